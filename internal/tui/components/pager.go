package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/mmcdole/folio/internal/tui/styles"
)

// Dots are used up to this many pages, "page x of y" beyond it
const maxDotPages = 12

// Pager renders a 1-based page position and bounds page changes
type Pager struct {
	model paginator.Model
}

// NewPager creates a pager on page 1 of 1
func NewPager() Pager {
	p := paginator.New()
	p.ActiveDot = styles.AccentStyle.Render("●")
	p.InactiveDot = styles.DimStyle.Render("○")
	p.ArabicFormat = "page %d of %d"
	p.TotalPages = 1
	return Pager{model: p}
}

// Sync points the pager at page of total. total 0 renders as a single page.
func (p *Pager) Sync(page, total int) {
	if total < 1 {
		total = 1
	}
	p.model.TotalPages = total
	p.model.Page = page - 1
	if total > maxDotPages {
		p.model.Type = paginator.Arabic
	} else {
		p.model.Type = paginator.Dots
	}
}

// Page returns the current 1-based page
func (p Pager) Page() int {
	return p.model.Page + 1
}

// TotalPages returns the page count, at least 1
func (p Pager) TotalPages() int {
	return p.model.TotalPages
}

// Next returns the page after the current one, bounded by the last page
func (p Pager) Next() int {
	if p.Page() >= p.TotalPages() {
		return p.Page()
	}
	return p.Page() + 1
}

// Prev returns the page before the current one. A page left past the end
// by a narrower filter steps back onto the last real page.
func (p Pager) Prev() int {
	page := p.Page() - 1
	if page > p.TotalPages() {
		page = p.TotalPages()
	}
	if page < 1 {
		page = 1
	}
	return page
}

// View renders the page indicator
func (p Pager) View() string {
	if p.Page() > p.TotalPages() {
		// The dots view cannot show a page past the end
		return styles.DimStyle.Render(fmt.Sprintf(p.model.ArabicFormat, p.Page(), p.TotalPages()))
	}
	return p.model.View()
}
