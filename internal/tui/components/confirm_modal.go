package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// ConfirmModal asks a yes/no question
type ConfirmModal struct {
	visible bool
	title   string
	message string
}

// Show displays the question
func (m *ConfirmModal) Show(title, message string) {
	m.visible = true
	m.title = title
	m.message = message
}

// Hide dismisses the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Message returns the question being asked
func (m ConfirmModal) Message() string {
	return m.message
}

// Update handles a key press, returns (modal, answered, accepted).
// The modal hides itself once answered.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, bool, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.visible || !ok {
		return m, false, false
	}
	switch {
	case key.Matches(keyMsg, ConfirmKeys.Yes):
		m.Hide()
		return m, true, true
	case key.Matches(keyMsg, ConfirmKeys.No):
		m.Hide()
		return m, true, false
	}
	return m, false, false
}

// View renders the question with its choices
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}
	body := lipgloss.NewStyle().Width(formModalWidth)
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		body.Foreground(styles.LightGray).Render(m.message),
		"",
		body.Align(lipgloss.Center).Render(
			styles.HelpKeyStyle.Render("[Y]")+styles.HelpDescStyle.Render(" Yes      ")+
				styles.HelpKeyStyle.Render("[N]")+styles.HelpDescStyle.Render(" No")),
	)
	return styles.ModalStyle.Render(content)
}
