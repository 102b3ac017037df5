package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/tui/styles"
)

const (
	cardInnerWidth = 28
	cardOuterWidth = cardInnerWidth + 4 // border + padding
)

// BookCard is one catalog entry as the grid shows it
type BookCard struct {
	Book  domain.Book
	Owned bool
}

// BookGrid lays the displayed page of books out as cards
type BookGrid struct {
	cards       []BookCard
	cursor      int
	width       int
	height      int
	showActions bool // buy/download hints need a signed-in user

	emptyText   string
	suggestions []string
}

// NewBookGrid creates an empty grid
func NewBookGrid() BookGrid {
	return BookGrid{}
}

// SetCards replaces the cards and keeps the cursor in range
func (g *BookGrid) SetCards(cards []BookCard) {
	g.cards = cards
	g.clampCursor()
}

// SetSize updates the component dimensions
func (g *BookGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// SetShowActions toggles the buy and download hints
func (g *BookGrid) SetShowActions(show bool) {
	g.showActions = show
}

// SetEmpty sets what to show when there are no cards
func (g *BookGrid) SetEmpty(text string, suggestions []string) {
	g.emptyText = text
	g.suggestions = suggestions
}

// Len returns the number of cards
func (g BookGrid) Len() int {
	return len(g.cards)
}

// Cursor returns the selected card index
func (g BookGrid) Cursor() int {
	return g.cursor
}

// SetCursor selects card i, clamped to the grid
func (g *BookGrid) SetCursor(i int) {
	g.cursor = i
	g.clampCursor()
}

func (g *BookGrid) clampCursor() {
	if g.cursor >= len(g.cards) {
		g.cursor = len(g.cards) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

// Selected returns the card under the cursor
func (g BookGrid) Selected() (BookCard, bool) {
	if len(g.cards) == 0 {
		return BookCard{}, false
	}
	return g.cards[g.cursor], true
}

// Columns returns how many cards fit side by side
func (g BookGrid) Columns() int {
	cols := g.width / cardOuterWidth
	if cols < 1 {
		return 1
	}
	return cols
}

// MoveLeft moves the cursor one card back; false at the first card
func (g *BookGrid) MoveLeft() bool {
	if g.cursor == 0 {
		return false
	}
	g.cursor--
	return true
}

// MoveRight moves the cursor one card on; false at the last card
func (g *BookGrid) MoveRight() bool {
	if g.cursor >= len(g.cards)-1 {
		return false
	}
	g.cursor++
	return true
}

// MoveUp moves the cursor one row up
func (g *BookGrid) MoveUp() bool {
	if g.cursor-g.Columns() < 0 {
		return false
	}
	g.cursor -= g.Columns()
	return true
}

// MoveDown moves the cursor one row down, onto the last card of a short row
func (g *BookGrid) MoveDown() bool {
	cols := g.Columns()
	row := g.cursor / cols
	lastRow := (len(g.cards) - 1) / cols
	if len(g.cards) == 0 || row >= lastRow {
		return false
	}
	g.cursor += cols
	g.clampCursor()
	return true
}

// View renders the grid
func (g BookGrid) View() string {
	if len(g.cards) == 0 {
		return g.renderEmpty()
	}

	cols := g.Columns()
	var rows []string
	for start := 0; start < len(g.cards); start += cols {
		end := start + cols
		if end > len(g.cards) {
			end = len(g.cards)
		}
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, g.renderCard(g.cards[i], i == g.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (g BookGrid) renderEmpty() string {
	text := g.emptyText
	if text == "" {
		text = "No books available."
	}
	lines := []string{styles.DimStyle.Render(text)}
	if len(g.suggestions) > 0 {
		quoted := make([]string, len(g.suggestions))
		for i, s := range g.suggestions {
			quoted[i] = styles.AccentStyle.Render(s)
		}
		lines = append(lines, "", styles.DimStyle.Render("Did you mean: ")+strings.Join(quoted, styles.DimStyle.Render(", "))+styles.DimStyle.Render("?"))
	}
	return strings.Join(lines, "\n")
}

func (g BookGrid) renderCard(card BookCard, selected bool) string {
	b := card.Book

	title := styles.TitleStyle.Render(styles.Truncate(b.Title, cardInnerWidth))
	author := styles.SubtitleStyle.Render(styles.Truncate("by "+b.Author, cardInnerWidth))

	meta := b.ISBN
	if year := b.YearString(); year != "" {
		meta = year + " · " + meta
	}
	meta = styles.DimStyle.Render(styles.Truncate(meta, cardInnerWidth))

	var action string
	switch {
	case card.Owned:
		action = styles.OwnedBadgeStyle.Render("OWNED")
		if g.showActions {
			action += styles.DimStyle.Render(" d download")
		}
	default:
		action = styles.AccentStyle.Render(b.FormattedPrice())
		if g.showActions {
			action += styles.DimStyle.Render(" · b buy")
		}
	}

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(cardInnerWidth + 2).Render(
		fmt.Sprintf("%s\n%s\n%s\n%s", title, author, meta, action))
}
