package analysis

import (
	"strings"
	"testing"
)

func TestRawScore(t *testing.T) {
	scorer := &SentimentScorer{
		Positive:         wordSet("good"),
		Negative:         wordSet("bad"),
		Weight:           1.0,
		Scale:            5.0,
		NeutralThreshold: 0.1,
	}

	if raw := scorer.RawScore("good good bad"); raw != 1 {
		t.Errorf("Expected raw score 1 for 'good good bad', got %v", raw)
	}
}

func TestScoreBounded(t *testing.T) {
	scorer := NewSentimentScorer()

	inputs := []string{
		"good great excellent support benefit",
		"bad terrible harmful waste unfair",
		strings.Repeat("support ", 100),
		strings.Repeat("oppose ", 100),
		"the committee met on tuesday",
	}
	for _, in := range inputs {
		result := scorer.Score(in)
		if result.Score < -1 || result.Score > 1 {
			t.Errorf("Score %v out of [-1,1] for %q", result.Score, in)
		}
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("Confidence %v out of [0,1] for %q", result.Confidence, in)
		}
	}
}

func TestScoreClassification(t *testing.T) {
	scorer := NewSentimentScorer()

	tests := []struct {
		text string
		want Sentiment
	}{
		{"I strongly support this bill, it will improve protection for workers", SentimentPositive},
		{"This is a wasteful and harmful overreach, I oppose it", SentimentNegative},
		{"The hearing is scheduled for next month in the main chamber", SentimentNeutral},
		{"", SentimentNeutral},
	}
	for _, tt := range tests {
		got := scorer.Score(tt.text)
		if got.Sentiment != tt.want {
			t.Errorf("Score(%q).Sentiment = %s, want %s (score %v)", tt.text, got.Sentiment, tt.want, got.Score)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewSentimentScorer()
	text := "The proposal seems balanced but the funding section is vague"

	first := scorer.Score(text)
	for i := 0; i < 10; i++ {
		if got := scorer.Score(text); got != first {
			t.Fatalf("Non-deterministic result on run %d: %+v vs %+v", i, got, first)
		}
	}
}

func TestScoreIgnoresPunctuationAndCase(t *testing.T) {
	scorer := NewSentimentScorer()

	plain := scorer.Score("i support this bill")
	decorated := scorer.Score("I SUPPORT this bill!")
	if plain.Sentiment != decorated.Sentiment || plain.Score != decorated.Score {
		t.Errorf("Case/punctuation changed result: %+v vs %+v", plain, decorated)
	}
}
