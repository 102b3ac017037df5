package catalog

import (
	"strings"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/sahilm/fuzzy"
)

// JumpMatch is a book found by the jump palette, with match positions for highlighting
type JumpMatch struct {
	Book           domain.Book
	Label          string // "Title · Author"
	MatchedIndexes []int  // byte offsets into Label
	Score          int
}

// jumpIndex implements fuzzy.Source over pre-lowered labels
type jumpIndex struct {
	books  []domain.Book
	labels []string
	lower  []string
}

func (idx *jumpIndex) String(i int) string { return idx.lower[i] }
func (idx *jumpIndex) Len() int            { return len(idx.books) }

func jumpLabel(b domain.Book) string {
	if b.Author == "" {
		return b.Title
	}
	return b.Title + " · " + b.Author
}

// Jump fuzzy-matches query against every book's title and author, best first
func Jump(query string, books []domain.Book) []JumpMatch {
	query = strings.TrimSpace(query)
	if query == "" || len(books) == 0 {
		return nil
	}

	idx := &jumpIndex{
		books:  books,
		labels: make([]string, len(books)),
		lower:  make([]string, len(books)),
	}
	for i, b := range books {
		idx.labels[i] = jumpLabel(b)
		idx.lower[i] = strings.ToLower(idx.labels[i])
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), idx)

	results := make([]JumpMatch, len(matches))
	for i, m := range matches {
		results[i] = JumpMatch{
			Book:           books[m.Index],
			Label:          idx.labels[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// JumpTo clears the filter and moves to the page holding isbn.
// It reports false when the book is not in the catalog.
func (v *View) JumpTo(isbn string) bool {
	v.ClearSearch()
	page := v.PageOf(isbn)
	if page == 0 {
		return false
	}
	v.ChangePage(page)
	return true
}
