package catalog

import (
	"testing"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shelf = []domain.Book{
	{ISBN: "1", Title: "Dune", Author: "Frank Herbert"},
	{ISBN: "2", Title: "Neuromancer", Author: "William Gibson"},
	{ISBN: "3", Title: "Foundation", Author: "Isaac Asimov"},
	{ISBN: "4", Title: "Hyperion", Author: "Dan Simmons"},
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, []string{"Dune"}, Suggest("dnue", shelf), "typo")
	assert.Contains(t, Suggest("fndtn", shelf), "Foundation", "subsequence")
	assert.Empty(t, Suggest("zzzzzzzz", shelf))
	assert.Empty(t, Suggest("", shelf))
	assert.LessOrEqual(t, len(Suggest("n", shelf)), MaxSuggestions)
}

func TestJump(t *testing.T) {
	matches := Jump("gibson", shelf)
	require.NotEmpty(t, matches)
	assert.Equal(t, "2", matches[0].Book.ISBN)
	assert.Equal(t, "Neuromancer · William Gibson", matches[0].Label)
	assert.NotEmpty(t, matches[0].MatchedIndexes)

	assert.Nil(t, Jump("  ", shelf))
}
