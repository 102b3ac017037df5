package catalog

import (
	"testing"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isbns(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ISBN
	}
	return out
}

func TestView_Pagination(t *testing.T) {
	v := NewView(6)
	v.SetBooks(testutil.Books(7))

	assert.Equal(t, 2, v.TotalPages())
	assert.Len(t, v.Displayed(), 6)

	v.ChangePage(2)
	assert.Equal(t, []string{"isbn-7"}, isbns(v.Displayed()))
}

func TestView_EmptyCatalog(t *testing.T) {
	v := NewView(0)
	assert.Equal(t, DefaultItemsPerPage, v.ItemsPerPage())
	assert.Equal(t, 0, v.TotalPages())
	assert.Empty(t, v.Displayed())
}

func TestView_ExactMultipleOfPageSize(t *testing.T) {
	v := NewView(6)
	v.SetBooks(testutil.Books(12))
	assert.Equal(t, 2, v.TotalPages())
	v.ChangePage(3)
	assert.Empty(t, v.Displayed())
}

func TestView_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	v := NewView(6)
	v.SetBooks([]domain.Book{
		{ISBN: "1", Title: "Dune"},
		{ISBN: "2", Title: "Children of Dune"},
		{ISBN: "3", Title: "Neuromancer"},
	})

	v.SetSearchTerm("DUNE")
	assert.Equal(t, []string{"1", "2"}, isbns(v.Filtered()))

	v.SetSearchTerm("une")
	assert.Equal(t, []string{"1", "2"}, isbns(v.Filtered()))

	v.ClearSearch()
	assert.Len(t, v.Filtered(), 3)
}

func TestView_FilterWithoutMatches(t *testing.T) {
	v := NewView(6)
	v.SetBooks(testutil.Books(3))
	v.SetSearchTerm("Dune")
	assert.Empty(t, v.Filtered())
	assert.Empty(t, v.Displayed())
	assert.Equal(t, 0, v.TotalPages())
}

func TestView_FilterDoesNotResetPage(t *testing.T) {
	v := NewView(6)
	v.SetBooks(testutil.Books(13))
	v.ChangePage(3)
	require.Equal(t, []string{"isbn-13"}, isbns(v.Displayed()))

	// "Book 1" matches 1, 10..13: one page, but we stay on page 3
	v.SetSearchTerm("Book 1")
	assert.Equal(t, 3, v.Page())
	assert.Equal(t, 1, v.TotalPages())
	assert.Empty(t, v.Displayed())

	v.ChangePage(1)
	assert.Equal(t, []string{"isbn-1", "isbn-10", "isbn-11", "isbn-12", "isbn-13"}, isbns(v.Displayed()))
}

func TestView_DisplayedIsSubsetOfFiltered(t *testing.T) {
	v := NewView(4)
	v.SetBooks(testutil.Books(10))
	v.SetSearchTerm("1")

	filtered := v.Filtered()
	for page := 1; page <= v.TotalPages(); page++ {
		v.ChangePage(page)
		displayed := v.Displayed()
		assert.LessOrEqual(t, len(displayed), v.ItemsPerPage())
		for _, b := range displayed {
			assert.Contains(t, filtered, b)
		}
	}
}

func TestView_PendingOwnership(t *testing.T) {
	v := NewView(2)
	v.SetBooks(testutil.Books(3))

	isbns, first := v.PendingOwnership()
	assert.Equal(t, []string{"isbn-1", "isbn-2"}, isbns)
	isbns, _ = v.PendingOwnership()
	assert.Empty(t, isbns, "already requested books are not re-issued")

	v.ChangePage(2)
	isbns, second := v.PendingOwnership()
	assert.Equal(t, []string{"isbn-3"}, isbns)
	assert.NotEqual(t, first, second)

	assert.True(t, v.ApplyOwnership(second, map[string]bool{"isbn-3": true}))
	assert.True(t, v.Owned("isbn-3"))
	assert.False(t, v.Owned("isbn-1"))

	v.InvalidateOwnership("isbn-3")
	assert.False(t, v.Owned("isbn-3"))
	isbns, _ = v.PendingOwnership()
	assert.Equal(t, []string{"isbn-3"}, isbns)

	v.SetBooks(testutil.Books(3))
	isbns, _ = v.PendingOwnership()
	assert.Equal(t, []string{"isbn-3"}, isbns, "a new snapshot resets ownership")
}

func TestView_ApplyOwnershipDropsStaleBatches(t *testing.T) {
	v := NewView(2)
	v.SetBooks(testutil.Books(2))
	_, old := v.PendingOwnership()

	// a reload lands before the first answers do
	v.SetBooks(testutil.Books(2))
	_, fresh := v.PendingOwnership()
	require.True(t, v.ApplyOwnership(fresh, map[string]bool{"isbn-1": true, "isbn-2": false}))

	assert.False(t, v.ApplyOwnership(old, map[string]bool{"isbn-1": false, "isbn-2": true}))
	assert.True(t, v.Owned("isbn-1"))
	assert.False(t, v.Owned("isbn-2"))

	// re-requesting one book leaves the other book's lookup valid
	v.InvalidateOwnership("isbn-1")
	isbns, third := v.PendingOwnership()
	require.Equal(t, []string{"isbn-1"}, isbns)
	assert.False(t, v.ApplyOwnership(fresh, map[string]bool{"isbn-1": false}))
	assert.True(t, v.ApplyOwnership(third, map[string]bool{"isbn-1": true}))
	assert.True(t, v.Owned("isbn-1"))

	assert.False(t, v.ApplyOwnership(third, map[string]bool{"isbn-9": true}), "unknown books are ignored")
}

func TestView_JumpTo(t *testing.T) {
	v := NewView(6)
	v.SetBooks(testutil.Books(13))
	v.SetSearchTerm("nothing matches")

	require.True(t, v.JumpTo("isbn-8"))
	assert.Equal(t, "", v.SearchTerm())
	assert.Equal(t, 2, v.Page())

	assert.False(t, v.JumpTo("missing"))
}
