package analysis

import (
	"sort"
	"strings"
	"unicode"
)

// WordFrequency is one entry of a ranked word-frequency table.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FrequencyOptions controls tokenization and ranking.
type FrequencyOptions struct {
	MinWordLength   int
	MaxWords        int
	RemoveStopwords bool
}

// DefaultFrequencyOptions returns the settings used by the dashboard word cloud.
func DefaultFrequencyOptions() FrequencyOptions {
	return FrequencyOptions{
		MinWordLength:   3,
		MaxWords:        50,
		RemoveStopwords: true,
	}
}

// stopwords common English words excluded from frequency analysis
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "this": true, "that": true, "with": true,
	"they": true, "them": true, "their": true, "there": true, "these": true,
	"those": true, "from": true, "will": true, "would": true, "should": true,
	"could": true, "been": true, "being": true, "were": true, "into": true,
	"more": true, "most": true, "some": true, "such": true, "than": true,
	"then": true, "when": true, "which": true, "while": true, "what": true,
	"where": true, "who": true, "whom": true, "why": true, "how": true,
	"about": true, "also": true, "any": true, "because": true, "does": true,
	"each": true, "its": true, "itself": true, "just": true, "like": true,
	"made": true, "make": true, "many": true, "may": true, "might": true,
	"much": true, "must": true, "only": true, "other": true, "over": true,
	"same": true, "shall": true, "still": true, "under": true, "upon": true,
	"very": true, "your": true,
}

// Tokenize lowercases the input, strips punctuation and splits on whitespace.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// WordFrequencies produces a descending-frequency ranking of the distinct words
// in text. Ties on equal counts keep the order in which the words first
// appeared. Words shorter than MinWordLength are dropped, stopwords optionally
// so, and the result is truncated to MaxWords entries.
func WordFrequencies(text string, opts FrequencyOptions) []WordFrequency {
	tokens := Tokenize(text)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for _, tok := range tokens {
		if len([]rune(tok)) < opts.MinWordLength {
			continue
		}
		if opts.RemoveStopwords && stopwords[tok] {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = len(firstSeen)
		}
		counts[tok]++
	}

	ranked := make([]WordFrequency, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, WordFrequency{Word: word, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Word] < firstSeen[ranked[j].Word]
	})

	if opts.MaxWords > 0 && len(ranked) > opts.MaxWords {
		ranked = ranked[:opts.MaxWords]
	}
	return ranked
}
