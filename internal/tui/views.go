package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.State == StateHelp {
		return m.renderHelp()
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)

	// Modals are drawn over the whole screen
	switch {
	case m.Omnibar.IsVisible():
		return m.overlay(m.Omnibar.View())
	case m.Confirm.IsVisible():
		return m.overlay(m.Confirm.View())
	case m.Form.IsVisible():
		return m.overlay(m.Form.View())
	}
	return main
}

func (m Model) overlay(modal string) string {
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		modal)
}

// renderHeader shows the search state and who is signed in
func (m Model) renderHeader() string {
	left := styles.HeaderStyle.Render("folio")
	switch {
	case m.Searching:
		left += " " + m.Search.View()
	case m.Catalog.SearchTerm() != "":
		left += " " + styles.FilterPromptStyle.Render("/ ") + styles.FilterStyle.Render(m.Catalog.SearchTerm()) +
			styles.DimStyle.Render(fmt.Sprintf("  %d found · esc clear", len(m.Catalog.Filtered())))
	}

	var right string
	switch {
	case m.Session.IsAdmin():
		right = styles.BadgeStyle.Render("ADMIN") + styles.UserStyle.Render(m.Session.Username)
	case m.Session.SignedIn():
		right = styles.UserStyle.Render(m.Session.Username)
	default:
		right = styles.DimStyle.Render("not signed in ")
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderBody lays the grid and pager out next to the inspector
func (m Model) renderBody() string {
	layout := m.calculateLayout()
	contentHeight := max(m.Height-ChromeHeight, 1)

	gridPane := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(m.Grid.View()),
		m.Pager.View(),
	)
	gridPane = styles.CatalogStyle.Width(layout.gridWidth).Render(gridPane)

	if layout.inspectorWidth == 0 {
		return gridPane
	}

	inspector := styles.InspectorStyle.
		Width(layout.inspectorWidth - 1).
		Height(contentHeight + 1).
		MaxHeight(contentHeight + 1).
		Render(m.Inspector.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, gridPane, inspector)
}

// renderFooter renders the status line and context hints
func (m Model) renderFooter() string {
	// Left side: spinner while loading, otherwise the last status message
	var left string
	if m.Loading {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	// Center section: what the current user can do
	var hints []string
	switch {
	case m.Session.IsAdmin():
		hints = []string{"n new", "e edit", "x delete"}
	case m.Session.SignedIn():
		hints = []string{"b buy", "d download", "w review"}
	default:
		hints = []string{"L log in", "S sign up"}
	}
	center := renderHints(hints)

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func renderHints(hints []string) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		k, desc, _ := strings.Cut(h, " ")
		parts[i] = styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
	}
	return strings.Join(parts, styles.DimStyle.Render("  "))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSING                        BOOKS
  h/j/k/l    Move selection        b      Buy
  [ / ]      Previous/next page    d      Download
  /          Filter by title       w      Write a review
  f          Jump to book          enter  Show details
  esc        Clear filter          < / >  Review pages
  C-r        Refresh               i      Toggle details

ACCOUNT                         ADMIN
  L          Log in                n      Add book
  S          Sign up               e      Edit book
  O          Log out               x      Delete book
  $          Balance
  D          Delete account        q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
