package classify

import (
	"sort"
	"strings"
	"unicode"
)

// TopKeywords tokenizes text on whitespace and punctuation and returns up to
// k distinct tokens ranked by descending frequency. Ties keep the order of
// first occurrence in the text, so the result is fully deterministic.
func TopKeywords(text string, k int) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(tokens) == 0 || k <= 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > k {
		order = order[:k]
	}
	return order
}
