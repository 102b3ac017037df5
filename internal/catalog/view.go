package catalog

import (
	"strings"

	"github.com/mmcdole/folio/internal/domain"
)

// DefaultItemsPerPage is the storefront grid size
const DefaultItemsPerPage = 6

// View is the catalog browsing state: a snapshot of the catalog plus the
// search term, the current page and the per-book ownership flags.
//
// The page is deliberately not clamped when the filter shrinks the result
// set; Displayed simply comes back empty until the page changes.
type View struct {
	books        []domain.Book
	page         int
	searchTerm   string
	itemsPerPage int

	ownership map[string]bool   // isbn -> owned, only for answered lookups
	requested map[string]uint64 // isbn -> batch of the lookup in flight
	batch     uint64
}

// NewView creates an empty view. itemsPerPage <= 0 uses DefaultItemsPerPage.
func NewView(itemsPerPage int) *View {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	return &View{
		page:         1,
		itemsPerPage: itemsPerPage,
		ownership:    make(map[string]bool),
		requested:    make(map[string]uint64),
	}
}

// SetBooks replaces the catalog snapshot. Ownership flags belong to the old
// snapshot and are dropped, along with any lookups still in flight.
func (v *View) SetBooks(books []domain.Book) {
	v.books = books
	v.ownership = make(map[string]bool)
	v.requested = make(map[string]uint64)
}

func (v *View) Books() []domain.Book { return v.books }
func (v *View) Page() int            { return v.page }
func (v *View) SearchTerm() string   { return v.searchTerm }
func (v *View) ItemsPerPage() int    { return v.itemsPerPage }

// SetSearchTerm updates the filter. The page is left alone.
func (v *View) SetSearchTerm(term string) {
	v.searchTerm = term
}

// ClearSearch removes the filter
func (v *View) ClearSearch() {
	v.searchTerm = ""
}

// ChangePage moves to page n. Bounds are the pagination control's job.
func (v *View) ChangePage(n int) {
	v.page = n
}

// Filtered returns the books whose title contains the search term, ignoring case
func (v *View) Filtered() []domain.Book {
	if v.searchTerm == "" {
		return v.books
	}
	term := strings.ToLower(v.searchTerm)
	filtered := make([]domain.Book, 0, len(v.books))
	for _, b := range v.books {
		if strings.Contains(strings.ToLower(b.Title), term) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// Displayed returns the current page's slice of the filtered books
func (v *View) Displayed() []domain.Book {
	filtered := v.Filtered()
	start := (v.page - 1) * v.itemsPerPage
	if start < 0 || start >= len(filtered) {
		return nil
	}
	end := start + v.itemsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// TotalPages returns how many pages the filtered books span
func (v *View) TotalPages() int {
	n := len(v.Filtered())
	return (n + v.itemsPerPage - 1) / v.itemsPerPage
}

// PageOf returns the page holding isbn within the filtered books, or 0
func (v *View) PageOf(isbn string) int {
	for i, b := range v.Filtered() {
		if b.ISBN == isbn {
			return i/v.itemsPerPage + 1
		}
	}
	return 0
}

// === Ownership ===

// Owned reports whether the book is known to be owned. Unknown counts as not owned.
func (v *View) Owned(isbn string) bool {
	return v.ownership[isbn]
}

// PendingOwnership returns the displayed books whose ownership has not been
// requested yet and marks them requested under a new batch number. The
// answer must be handed back to ApplyOwnership with that number.
func (v *View) PendingOwnership() ([]string, uint64) {
	var pending []string
	for _, b := range v.Displayed() {
		if _, ok := v.requested[b.ISBN]; ok {
			continue
		}
		pending = append(pending, b.ISBN)
	}
	if len(pending) == 0 {
		return nil, 0
	}
	v.batch++
	for _, isbn := range pending {
		v.requested[isbn] = v.batch
	}
	return pending, v.batch
}

// ApplyOwnership records the answers of lookup batch. Books re-requested or
// dropped since the batch was issued keep their current state. It reports
// whether any flag was recorded.
func (v *View) ApplyOwnership(batch uint64, owned map[string]bool) bool {
	applied := false
	for isbn, isOwned := range owned {
		if b, ok := v.requested[isbn]; !ok || b != batch {
			continue
		}
		v.ownership[isbn] = isOwned
		applied = true
	}
	return applied
}

// InvalidateOwnership forgets a book's flag so the next PendingOwnership re-issues it.
// Answers to earlier lookups for the book are ignored from then on.
func (v *View) InvalidateOwnership(isbn string) {
	delete(v.ownership, isbn)
	delete(v.requested, isbn)
}
