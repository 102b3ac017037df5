package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/folio/internal/tui/styles"
)

const formModalWidth = 52

// FormField describes one input of a FormModal
type FormField struct {
	Key         string
	Label       string
	Placeholder string
	Value       string // pre-filled text
	Secret      bool   // mask input (passwords)
}

// FormModal is a modal with one or more labelled text inputs.
// Enter moves to the next field and submits on the last one.
type FormModal struct {
	visible bool
	title   string
	message string
	fields  []FormField
	inputs  []textinput.Model
	focus   int
}

// NewFormModal creates a hidden form modal
func NewFormModal() FormModal {
	return FormModal{}
}

func newFormInput(f FormField) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = f.Placeholder
	ti.CharLimit = 500
	ti.Width = formModalWidth - 4
	ti.Prompt = "› "
	ti.PromptStyle = styles.DimStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.Paper)
	ti.PlaceholderStyle = styles.DimStyle
	if f.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.SetValue(f.Value)
	return ti
}

// Show displays the modal with a title, an optional message and its fields
func (m *FormModal) Show(title, message string, fields []FormField) {
	m.visible = true
	m.title = title
	m.message = message
	m.fields = fields
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		m.inputs[i] = newFormInput(f)
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

// Hide dismisses the modal
func (m *FormModal) Hide() {
	m.visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// IsVisible returns whether the modal is shown
func (m FormModal) IsVisible() bool {
	return m.visible
}

// Title returns the title the modal was shown with
func (m FormModal) Title() string {
	return m.title
}

// Message returns the explanatory text above the fields
func (m FormModal) Message() string {
	return m.message
}

// Value returns the current text of the field with the given key
func (m FormModal) Value(key string) string {
	for i, f := range m.fields {
		if f.Key == key {
			return m.inputs[i].Value()
		}
	}
	return ""
}

// Values returns every field's text keyed by FormField.Key
func (m FormModal) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for i, f := range m.fields {
		values[f.Key] = m.inputs[i].Value()
	}
	return values
}

func (m *FormModal) setFocus(i int) {
	if i < 0 || i >= len(m.inputs) {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// Update handles input events, returns (modal, cmd, submitted)
func (m FormModal) Update(msg tea.Msg) (FormModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, FormKeys.Escape):
			m.Hide()
			return m, nil, false
		case key.Matches(keyMsg, FormKeys.Enter):
			if m.focus >= len(m.inputs)-1 {
				return m, nil, true
			}
			m.setFocus(m.focus + 1)
			return m, nil, false
		case key.Matches(keyMsg, FormKeys.Next):
			m.setFocus(m.focus + 1)
			return m, nil, false
		case key.Matches(keyMsg, FormKeys.Prev):
			m.setFocus(m.focus - 1)
			return m, nil, false
		}
	}

	if len(m.inputs) == 0 {
		return m, nil, false
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, false
}

// View renders the form modal
func (m FormModal) View() string {
	if !m.visible {
		return ""
	}

	block := lipgloss.NewStyle().
		Width(formModalWidth).
		Background(styles.InkDark)

	var rows []string
	rows = append(rows, block.Foreground(styles.Paper).Bold(true).Render(m.title))
	if m.message != "" {
		rows = append(rows, block.Render(""), block.Foreground(styles.LightGray).Render(m.message))
	}
	for i, f := range m.fields {
		label := styles.LabelStyle
		if i == m.focus {
			label = styles.FocusedLabelStyle
		}
		rows = append(rows, block.Render(""), block.Render(label.Render(f.Label)), block.Render(m.inputs[i].View()))
	}

	hint := "enter submit · esc cancel"
	if len(m.inputs) > 1 {
		hint = "tab next field · " + hint
	}
	rows = append(rows, block.Render(""), block.Render(styles.DimStyle.Render(hint)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Background(styles.InkDark).
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))
}
