// Package keywords implements the keyword extraction shared by the memory,
// retrieval, and summarization engines.
package keywords

import "strings"

// stopWords are dropped before keyword comparison. The set is deliberately
// small; matching is literal token overlap, not semantic.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
}

const minKeywordLen = 4

// Extract returns the de-duplicated keywords of a text: lower-cased
// whitespace tokens with stop words and short tokens removed. Order follows
// first occurrence.
func Extract(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if stopWords[w] || len(w) < minKeywordLen {
			continue
		}
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// ExtractSet returns the keywords of a text as a set.
func ExtractSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, w := range Extract(text) {
		set[w] = true
	}
	return set
}

// ToSet converts a keyword slice to a set.
func ToSet(words []string) map[string]bool {
	set := map[string]bool{}
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Overlap counts the keywords present in both sets.
func Overlap(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}
