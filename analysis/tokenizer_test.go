package analysis

import (
	"strings"
	"testing"
)

func TestWordFrequenciesCounts(t *testing.T) {
	opts := FrequencyOptions{MinWordLength: 1, MaxWords: 0, RemoveStopwords: false}
	freqs := WordFrequencies("tax tax budget tax budget rights", opts)

	if len(freqs) != 3 {
		t.Fatalf("Expected 3 distinct words, got %d", len(freqs))
	}
	if freqs[0].Word != "tax" || freqs[0].Count != 3 {
		t.Errorf("Expected tax x3 first, got %s x%d", freqs[0].Word, freqs[0].Count)
	}
	if freqs[1].Word != "budget" || freqs[1].Count != 2 {
		t.Errorf("Expected budget x2 second, got %s x%d", freqs[1].Word, freqs[1].Count)
	}

	total := 0
	for _, f := range freqs {
		total += f.Count
	}
	if tokens := len(Tokenize("tax tax budget tax budget rights")); total > tokens {
		t.Errorf("Counts sum %d exceeds token count %d", total, tokens)
	}
}

func TestWordFrequenciesTieBreak(t *testing.T) {
	// Equal counts must keep first-occurrence order.
	opts := FrequencyOptions{MinWordLength: 1, MaxWords: 0, RemoveStopwords: false}
	freqs := WordFrequencies("zebra apple zebra apple mango mango", opts)

	want := []string{"zebra", "apple", "mango"}
	for i, w := range want {
		if freqs[i].Word != w {
			t.Errorf("Position %d: expected %s, got %s", i, w, freqs[i].Word)
		}
	}
}

func TestWordFrequenciesStripsPunctuationAndCase(t *testing.T) {
	opts := FrequencyOptions{MinWordLength: 1, MaxWords: 0, RemoveStopwords: false}
	freqs := WordFrequencies("Budget, budget! BUDGET.", opts)

	if len(freqs) != 1 {
		t.Fatalf("Expected 1 distinct word, got %d", len(freqs))
	}
	if freqs[0].Word != "budget" || freqs[0].Count != 3 {
		t.Errorf("Expected budget x3, got %s x%d", freqs[0].Word, freqs[0].Count)
	}
}

func TestWordFrequenciesFilters(t *testing.T) {
	opts := FrequencyOptions{MinWordLength: 3, MaxWords: 0, RemoveStopwords: true}
	freqs := WordFrequencies("the tax on it is a burden and the tax", opts)

	for _, f := range freqs {
		if len(f.Word) < 3 {
			t.Errorf("Word %q shorter than minimum length", f.Word)
		}
		if stopwords[f.Word] {
			t.Errorf("Stopword %q not filtered", f.Word)
		}
	}
	if freqs[0].Word != "tax" {
		t.Errorf("Expected tax first, got %s", freqs[0].Word)
	}
}

func TestWordFrequenciesTruncation(t *testing.T) {
	text := strings.Repeat("alpha ", 5) + strings.Repeat("beta ", 4) + strings.Repeat("gamma ", 3) + "delta"
	opts := FrequencyOptions{MinWordLength: 1, MaxWords: 2, RemoveStopwords: false}
	freqs := WordFrequencies(text, opts)

	if len(freqs) != 2 {
		t.Fatalf("Expected truncation to 2 entries, got %d", len(freqs))
	}
	if freqs[0].Word != "alpha" || freqs[1].Word != "beta" {
		t.Errorf("Expected alpha, beta; got %s, %s", freqs[0].Word, freqs[1].Word)
	}
}

func TestWordFrequenciesEmptyInput(t *testing.T) {
	freqs := WordFrequencies("", DefaultFrequencyOptions())
	if len(freqs) != 0 {
		t.Errorf("Expected empty result for empty input, got %d entries", len(freqs))
	}
}
