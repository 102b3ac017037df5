package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/folio/internal/domain"
)

// MaxSuggestions caps the "did you mean" list
const MaxSuggestions = 3

// Suggest returns up to MaxSuggestions titles close to term. It is only
// meant for the empty-result hint and never changes what the filter shows.
func Suggest(term string, books []domain.Book) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(books) == 0 {
		return nil
	}

	type candidate struct {
		title string
		score int
	}

	seen := make(map[string]bool, len(books))
	var candidates []candidate

	titles := make([]string, 0, len(books))
	for _, b := range books {
		if b.Title == "" || seen[b.Title] {
			continue
		}
		seen[b.Title] = true
		titles = append(titles, b.Title)
	}

	// Subsequence hits first ("dne" -> "Dune"), ranked by distance
	ranked := fuzzy.RankFindFold(term, titles)
	sort.Sort(ranked)
	hit := make(map[string]bool, len(ranked))
	for _, r := range ranked {
		hit[r.Target] = true
		candidates = append(candidates, candidate{title: r.Target, score: r.Distance})
	}

	// Then typos ("dnue" -> "Dune"), compared word by word
	limit := len(term)/3 + 1
	for _, title := range titles {
		if hit[title] {
			continue
		}
		best := fuzzy.LevenshteinDistance(term, strings.ToLower(title))
		for _, word := range strings.Fields(strings.ToLower(title)) {
			if d := fuzzy.LevenshteinDistance(term, word); d < best {
				best = d
			}
		}
		if best <= limit {
			candidates = append(candidates, candidate{title: title, score: 1000 + best})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	out := make([]string, 0, MaxSuggestions)
	for _, c := range candidates {
		if len(out) == MaxSuggestions {
			break
		}
		out = append(out, c.title)
	}
	return out
}
