package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// markdown caches a glamour renderer for one wrap width
type markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func (m *markdown) render(text string, width int) string {
	if width < 10 {
		width = 10
	}
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		m.renderer = r
		m.width = width
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// GlamourStyle maps the configured UI theme to a glamour standard style
func GlamourStyle(theme string) string {
	switch theme {
	case "", "default":
		return "dark"
	default:
		return theme
	}
}

// ReviewsState is what the inspector knows about a book's reviews
type ReviewsState struct {
	Loading    bool
	Failed     bool
	Reviews    []domain.Review // the displayed page
	Page       int
	TotalPages int
	EmptyText  string
}

// Inspector shows the selected book's details and its reviews
type Inspector struct {
	book    *domain.Book
	owned   bool
	reviews ReviewsState
	pager   Pager
	width   int
	height  int
	offset  int
	md      *markdown
}

// NewInspector creates an inspector rendering markdown in the given glamour style
func NewInspector(style string) Inspector {
	return Inspector{
		pager: NewPager(),
		md:    &markdown{style: style},
	}
}

// SetBook shows book, resetting the scroll position when it changes
func (i *Inspector) SetBook(book *domain.Book, owned bool) {
	if book == nil || i.book == nil || i.book.ISBN != book.ISBN {
		i.offset = 0
	}
	i.book = book
	i.owned = owned
}

// Book returns the book on display
func (i Inspector) Book() *domain.Book {
	return i.book
}

// SetReviews updates the reviews section
func (i *Inspector) SetReviews(state ReviewsState) {
	i.reviews = state
	i.pager.Sync(state.Page, state.TotalPages)
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// ScrollDown scrolls the body by n lines
func (i *Inspector) ScrollDown(n int) {
	i.offset += n
}

// ScrollUp scrolls the body back by n lines
func (i *Inspector) ScrollUp(n int) {
	i.offset -= n
	if i.offset < 0 {
		i.offset = 0
	}
}

// View renders the inspector
func (i Inspector) View() string {
	if i.book == nil {
		return styles.DimStyle.Render("No book selected")
	}

	contentWidth := i.width - 4
	if contentWidth < 10 {
		contentWidth = 10
	}

	lines := strings.Split(i.render(contentWidth), "\n")
	if i.height > 0 && len(lines) > i.height {
		offset := i.offset
		if limit := len(lines) - i.height; offset > limit {
			offset = limit
		}
		lines = lines[offset : offset+i.height]
	}
	return strings.Join(lines, "\n")
}

func (i Inspector) render(width int) string {
	b := i.book
	var sb strings.Builder

	sb.WriteString(styles.TitleStyle.Render(lipgloss.NewStyle().Width(width).Render(b.Title)))
	sb.WriteString("\n")
	sb.WriteString(styles.SubtitleStyle.Render("by " + b.Author))
	sb.WriteString("\n\n")

	var meta []string
	if year := b.YearString(); year != "" {
		meta = append(meta, year)
	}
	meta = append(meta, "ISBN "+b.ISBN)
	sb.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	sb.WriteString("\n")

	if i.owned {
		sb.WriteString(styles.OwnedBadgeStyle.Render("OWNED"))
	} else {
		sb.WriteString(styles.BadgeStyle.Render(b.FormattedPrice()))
	}
	sb.WriteString("\n\n")

	if desc := strings.TrimSpace(b.Description); desc != "" {
		sb.WriteString(i.md.render(desc, width))
		sb.WriteString("\n\n")
	}

	sb.WriteString(styles.AccentStyle.Render("Reviews"))
	sb.WriteString("\n")
	sb.WriteString(i.renderReviews(width))
	return sb.String()
}

func (i Inspector) renderReviews(width int) string {
	r := i.reviews
	switch {
	case r.Loading:
		return styles.DimStyle.Render("Loading reviews...")
	case r.Failed:
		return styles.ErrorStyle.Render("Could not load reviews")
	case len(r.Reviews) == 0:
		return styles.DimStyle.Render(r.EmptyText)
	}

	var md strings.Builder
	for _, rev := range r.Reviews {
		fmt.Fprintf(&md, "**%s** %s", rev.UserName, rev.Stars())
		if !rev.CreatedAt.IsZero() {
			fmt.Fprintf(&md, " · %s", rev.CreatedAt.Format("Jan 2, 2006"))
		}
		md.WriteString("\n\n")
		for _, line := range strings.Split(strings.TrimSpace(rev.Comment), "\n") {
			md.WriteString("> " + line + "\n")
		}
		md.WriteString("\n")
	}

	out := i.md.render(md.String(), width)
	if r.TotalPages > 1 {
		out += "\n\n" + i.pager.View() + styles.DimStyle.Render("  < > reviews page")
	}
	return out
}
