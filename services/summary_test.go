package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractSummaryTextWellFormed(t *testing.T) {
	body := []byte(`{"summary": "Commenters largely support the bill."}`)
	got := ExtractSummaryText(body)
	if got != "Commenters largely support the bill." {
		t.Errorf("Unexpected summary: %q", got)
	}
}

func TestExtractSummaryTextStringEncodedObject(t *testing.T) {
	// The endpoint sometimes returns a JSON string wrapping a serialized
	// pseudo-object with unquoted keys and single quotes.
	body := []byte(`"{ summary: 'Mixed reactions to the funding section.', keyPoints: ['funding'] }"`)
	got := ExtractSummaryText(body)
	if got != "Mixed reactions to the funding section." {
		t.Errorf("Unexpected summary: %q", got)
	}
}

func TestExtractSummaryTextSingleQuotedObject(t *testing.T) {
	body := []byte(`{'summary': 'Support outweighs opposition.'}`)
	got := ExtractSummaryText(body)
	if got != "Support outweighs opposition." {
		t.Errorf("Unexpected summary: %q", got)
	}
}

func TestExtractSummaryTextPlainText(t *testing.T) {
	body := []byte("  Just a plain sentence.  ")
	got := ExtractSummaryText(body)
	if got != "Just a plain sentence." {
		t.Errorf("Expected raw string fallback, got %q", got)
	}
}

func TestExtractSummaryTextEmpty(t *testing.T) {
	if got := ExtractSummaryText([]byte("")); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
}

func TestSummarizeRemoteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		w.Write([]byte(`{"summary": "Broad support with funding concerns."}`))
	}))
	defer server.Close()

	svc := &SummaryService{url: server.URL, client: &http.Client{Timeout: 2 * time.Second}}
	summary, engine := svc.Summarize(context.Background(), "Transit Act", []string{"I support this.", "Funding is unclear."})

	if engine != "remote" {
		t.Errorf("Expected remote engine, got %s", engine)
	}
	if summary != "Broad support with funding concerns." {
		t.Errorf("Unexpected summary: %q", summary)
	}
}

func TestSummarizeFallsBackToLocal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := &SummaryService{url: server.URL, client: &http.Client{Timeout: 2 * time.Second}}
	comments := []string{
		"The bill improves transit funding for the whole region and the community supports it.",
		"Nobody likes waiting.",
		"Commenters asked about the budget impact of section two on local taxes this year.",
	}
	summary, engine := svc.Summarize(context.Background(), "Transit Act", comments)

	if engine != "local" {
		t.Errorf("Expected local engine after remote failure, got %s", engine)
	}
	if summary == "" {
		t.Error("Expected non-empty local summary")
	}
}

func TestSummarizeLocalDeterministic(t *testing.T) {
	svc := &SummaryService{}
	comments := []string{
		"I support the bill because it helps our community.",
		"The funding section is vague.",
		"Please publish the committee schedule.",
	}

	first, _ := svc.Summarize(context.Background(), "Transit Act", comments)
	second, _ := svc.Summarize(context.Background(), "Transit Act", comments)
	if first != second {
		t.Errorf("Local summary not deterministic: %q vs %q", first, second)
	}
}
