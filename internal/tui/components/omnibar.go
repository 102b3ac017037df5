package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/folio/internal/catalog"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/tui/styles"
)

const maxOmnibarResults = 10

// Omnibar is the jump-to-book palette
type Omnibar struct {
	input     textinput.Model
	books     []domain.Book
	results   []catalog.JumpMatch
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewOmnibar creates a new omnibar component
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Jump to a title or author..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.Paper)
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{
		input: ti,
	}
}

// Show makes the omnibar visible over books and focuses the input
func (o *Omnibar) Show(books []domain.Book) {
	o.visible = true
	o.books = books
	o.input.Focus()
	o.input.SetValue("")
	o.results = nil
	o.cursor = 0
	o.prevQuery = ""
}

// Hide hides the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the omnibar is visible
func (o Omnibar) IsVisible() bool {
	return o.visible
}

// SetSize updates the component dimensions
func (o *Omnibar) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = width - 10
}

// Query returns the current query
func (o Omnibar) Query() string {
	return o.input.Value()
}

// Results returns the current matches
func (o Omnibar) Results() []catalog.JumpMatch {
	return o.results
}

// Selected returns the book under the cursor
func (o Omnibar) Selected() *domain.Book {
	if len(o.results) == 0 || o.cursor >= len(o.results) {
		return nil
	}
	return &o.results[o.cursor].Book
}

// Update handles messages, returns (omnibar, cmd, selected)
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil, false
	}

	switch {
	case key.Matches(keyMsg, OmnibarKeys.Escape):
		o.Hide()
		return o, nil, false

	case key.Matches(keyMsg, OmnibarKeys.Enter):
		if len(o.results) > 0 {
			o.Hide()
			return o, nil, true
		}
		return o, nil, false

	case key.Matches(keyMsg, OmnibarKeys.Down):
		if o.cursor < len(o.results)-1 {
			o.cursor++
		}
		return o, nil, false

	case key.Matches(keyMsg, OmnibarKeys.Up):
		if o.cursor > 0 {
			o.cursor--
		}
		return o, nil, false
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	if q := o.input.Value(); q != o.prevQuery {
		o.prevQuery = q
		o.results = catalog.Jump(q, o.books)
		o.cursor = 0
	}
	return o, cmd, false
}

// View renders the omnibar modal
func (o Omnibar) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := o.width * 60 / 100
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 80 {
		modalWidth = 80
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Jump to book"))
	b.WriteString("\n")
	b.WriteString(o.input.View())
	b.WriteString("\n\n")
	o.renderResults(&b, modalWidth)

	return styles.ModalStyle.Width(modalWidth).Render(b.String())
}

func (o Omnibar) renderResults(b *strings.Builder, modalWidth int) {
	if len(o.results) == 0 {
		if o.input.Value() != "" {
			b.WriteString(styles.DimStyle.Render("No matches found"))
		}
		return
	}

	count := len(o.results)
	if count > maxOmnibarResults {
		count = maxOmnibarResults
	}
	for i := 0; i < count; i++ {
		r := o.results[i]
		selected := i == o.cursor
		label := styles.Truncate(r.Label, modalWidth-16)
		line := highlightMatches(label, r.MatchedIndexes, selected)
		if selected {
			line = styles.AccentStyle.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString(" ")
		b.WriteString(styles.DimStyle.Render(r.Book.FormattedPrice()))
		b.WriteString("\n")
	}

	if len(o.results) > maxOmnibarResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-maxOmnibarResults)))
	}
}

// highlightMatches renders text with the matched bytes emphasised,
// batching runs of equal match state into one styled segment
func highlightMatches(text string, matched []int, selected bool) string {
	normal := styles.NormalItemStyle.UnsetPadding()
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle.UnsetPadding()
		match = styles.MatchHighlightSelectedStyle
	}
	if len(matched) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	var out, run strings.Builder
	runMatch := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatch {
			out.WriteString(match.Render(run.String()))
		} else {
			out.WriteString(normal.Render(run.String()))
		}
		run.Reset()
	}
	for i, r := range text {
		if isMatch := matchSet[i]; isMatch != runMatch {
			flush()
			runMatch = isMatch
		}
		run.WriteRune(r)
	}
	flush()
	return out.String()
}
