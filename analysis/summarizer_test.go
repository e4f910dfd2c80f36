package analysis

import (
	"fmt"
	"strings"
	"testing"
)

func tenSentences() string {
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "Sentence number %d talks about the bill and its many provisions in detail. ", i)
	}
	return strings.TrimSpace(b.String())
}

func TestSummarizeTargetCount(t *testing.T) {
	opts := DefaultSummarizerOptions() // 40%
	summary := Summarize(tenSentences(), opts)

	got := len(splitSentences(summary))
	if got != 4 {
		t.Errorf("Expected 4 sentences from 10 at 40%%, got %d: %q", got, summary)
	}
}

func TestSummarizePreservesOriginalOrder(t *testing.T) {
	summary := Summarize(tenSentences(), DefaultSummarizerOptions())

	last := -1
	for i := 1; i <= 10; i++ {
		marker := fmt.Sprintf("number %d ", i)
		pos := strings.Index(summary, marker)
		if pos == -1 {
			continue
		}
		if pos < last {
			t.Fatalf("Sentence %d appears out of original order in %q", i, summary)
		}
		last = pos
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	text := tenSentences()
	opts := DefaultSummarizerOptions()

	first := Summarize(text, opts)
	for i := 0; i < 5; i++ {
		if got := Summarize(text, opts); got != first {
			t.Fatalf("Summarize not idempotent on run %d", i)
		}
	}
}

func TestSummarizeMinimumOneSentence(t *testing.T) {
	summary := Summarize("Only one short sentence here.", SummarizerOptions{Ratio: 0.1, MinSentenceWords: 8})
	if summary == "" {
		t.Error("Expected at least one sentence in summary")
	}
}

func TestSummarizePrefersKeywordSentences(t *testing.T) {
	text := "Alpha beta gamma delta epsilon zeta eta theta iota. " +
		"Birds fly south every year. " +
		"The cat sat on the mat quietly today. " +
		"The proposed legislation changes the tax code and budget rules for the committee. " +
		"Rain fell on the hills. " +
		"Clouds drifted over town. " +
		"The wind was cold. " +
		"Dogs barked at night. " +
		"Stars appeared above. " +
		"The moon rose late."
	opts := SummarizerOptions{
		Ratio:            0.2,
		Keywords:         []string{"legislation", "tax", "budget", "committee"},
		MinSentenceWords: 8,
	}

	summary := Summarize(text, opts)
	if !strings.Contains(summary, "proposed legislation") {
		t.Errorf("Keyword-rich sentence missing from summary: %q", summary)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	if got := Summarize("", DefaultSummarizerOptions()); got != "" {
		t.Errorf("Expected empty summary for empty input, got %q", got)
	}
}

func TestSplitSentencesTerminators(t *testing.T) {
	sentences := splitSentences("Is this fair? It is not! We will see.")
	if len(sentences) != 3 {
		t.Fatalf("Expected 3 sentences, got %d", len(sentences))
	}
	want := []string{"?", "!", "."}
	for i, term := range want {
		if sentences[i].terminator != term {
			t.Errorf("Sentence %d terminator = %q, want %q", i, sentences[i].terminator, term)
		}
	}
}
