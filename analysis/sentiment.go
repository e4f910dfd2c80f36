package analysis

import (
	"math"
	"strings"
)

// Sentiment is the classification of a scored comment.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// AnalyzedComment is the result of scoring a single comment.
type AnalyzedComment struct {
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
}

// SentimentScorer scores text against fixed positive/negative word lists.
// Scoring is fully deterministic: identical input always yields identical output.
type SentimentScorer struct {
	Positive map[string]bool
	Negative map[string]bool

	// Weight added (subtracted) per positive (negative) token match.
	Weight float64
	// Scale applied after dividing the raw score by the token count.
	Scale float64
	// NeutralThreshold is the magnitude below which a score classifies as neutral.
	NeutralThreshold float64
}

// NewSentimentScorer returns a scorer with the lexicon tuned for comments on
// draft legislation.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{
		Positive: wordSet(
			"good", "great", "excellent", "support", "supports", "benefit",
			"benefits", "improve", "improves", "improvement", "fair", "helpful",
			"protect", "protects", "protection", "important", "necessary",
			"agree", "favor", "positive", "progress", "strong", "effective",
			"transparent", "accountable", "welcome", "right", "sensible",
		),
		Negative: wordSet(
			"bad", "poor", "terrible", "oppose", "opposes", "harm", "harms",
			"harmful", "waste", "wasteful", "unfair", "burden", "burdensome",
			"against", "disagree", "negative", "wrong", "costly", "dangerous",
			"flawed", "vague", "unconstitutional", "overreach", "loophole",
			"unnecessary", "weak", "broken", "corrupt",
		),
		Weight:           1.0,
		Scale:            5.0,
		NeutralThreshold: 0.1,
	}
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// RawScore returns the unnormalized lexical score: +Weight per positive match,
// -Weight per negative match. Tokens are case-folded and split on whitespace,
// with surrounding punctuation trimmed before lookup.
func (s *SentimentScorer) RawScore(text string) float64 {
	var raw float64
	for _, tok := range sentimentTokens(text) {
		if s.Positive[tok] {
			raw += s.Weight
		} else if s.Negative[tok] {
			raw -= s.Weight
		}
	}
	return raw
}

// Score analyzes a comment and classifies it. The normalized score is the raw
// score divided by the token count and multiplied by Scale, clamped to [-1, 1].
func (s *SentimentScorer) Score(text string) AnalyzedComment {
	tokens := sentimentTokens(text)
	if len(tokens) == 0 {
		return AnalyzedComment{Text: text, Sentiment: SentimentNeutral}
	}

	var raw float64
	var matched int
	for _, tok := range tokens {
		if s.Positive[tok] {
			raw += s.Weight
			matched++
		} else if s.Negative[tok] {
			raw -= s.Weight
			matched++
		}
	}

	score := raw / float64(len(tokens)) * s.Scale
	score = clamp(score, -1, 1)

	sentiment := SentimentNeutral
	switch {
	case score > s.NeutralThreshold:
		sentiment = SentimentPositive
	case score < -s.NeutralThreshold:
		sentiment = SentimentNegative
	}

	// Confidence grows with both score magnitude and lexicon coverage.
	coverage := float64(matched) / float64(len(tokens))
	confidence := clamp(0.5+math.Abs(score)*0.3+coverage*0.2, 0, 1)
	if sentiment == SentimentNeutral {
		confidence = clamp(1-math.Abs(score)/s.NeutralThreshold*0.5, 0, 1)
	}

	return AnalyzedComment{
		Text:       text,
		Sentiment:  sentiment,
		Score:      score,
		Confidence: confidence,
	}
}

func sentimentTokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?\"'()[]{}")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
