package analysis

import (
	"math"
	"sort"
	"strings"
)

// SummarizerOptions controls extractive summarization.
type SummarizerOptions struct {
	// Ratio is the fraction of sentences to keep; at least one is always kept.
	Ratio float64
	// Keywords are domain terms that boost a sentence's score when present.
	Keywords []string
	// MinSentenceWords is the word count above which a sentence earns a length bonus.
	MinSentenceWords int
}

// DefaultSummarizerOptions returns the settings used for legislative comment
// summaries.
func DefaultSummarizerOptions() SummarizerOptions {
	return SummarizerOptions{
		Ratio: 0.4,
		Keywords: []string{
			"bill", "law", "legislation", "amendment", "section", "provision",
			"tax", "budget", "funding", "rights", "regulation", "enforcement",
			"committee", "public", "community", "impact",
		},
		MinSentenceWords: 8,
	}
}

const (
	keywordWeight  = 2.0
	positionWeight = 1.5
	lengthWeight   = 1.0
)

type sentence struct {
	text       string
	terminator string
	index      int
	score      float64
}

// Summarize selects the highest-scoring sentences of text and reassembles them
// in their original order. Given identical input and options the output is
// identical.
func Summarize(text string, opts SummarizerOptions) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	target := int(math.Round(opts.Ratio * float64(len(sentences))))
	if target < 1 {
		target = 1
	}
	if target >= len(sentences) {
		return joinSentences(sentences)
	}

	for i := range sentences {
		sentences[i].score = scoreSentence(sentences[i], len(sentences), opts)
	}

	ranked := make([]sentence, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	selected := ranked[:target]
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].index < selected[j].index
	})

	return joinSentences(selected)
}

// scoreSentence applies the three heuristics: keyword presence, a positional
// bonus for sentences near the start or end of the document, and a length
// bonus past the word-count threshold.
func scoreSentence(s sentence, total int, opts SummarizerOptions) float64 {
	var score float64

	lower := strings.ToLower(s.text)
	for _, kw := range opts.Keywords {
		if strings.Contains(lower, kw) {
			score += keywordWeight
		}
	}

	edge := total / 5
	if edge < 1 {
		edge = 1
	}
	if s.index < edge || s.index >= total-edge {
		score += positionWeight
	}

	if len(strings.Fields(s.text)) > opts.MinSentenceWords {
		score += lengthWeight
	}

	return score
}

// splitSentences splits text on terminal punctuation, keeping each sentence's
// terminator so the summary reads like the original.
func splitSentences(text string) []sentence {
	var out []sentence
	var b strings.Builder
	flush := func(term string) {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if s == "" {
			return
		}
		out = append(out, sentence{text: s, terminator: term, index: len(out)})
	}
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			flush(string(r))
		default:
			b.WriteRune(r)
		}
	}
	flush(".")
	return out
}

func joinSentences(sentences []sentence) string {
	var b strings.Builder
	for i, s := range sentences {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.text)
		b.WriteString(s.terminator)
	}
	return b.String()
}
