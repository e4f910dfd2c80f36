package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civiclens/analysis"
)

func newTestSentimentService(url string) *SentimentService {
	return &SentimentService{
		url:    url,
		client: &http.Client{Timeout: 2 * time.Second},
		scorer: analysis.NewSentimentScorer(),
	}
}

func TestAnalyzeCommentsRemoteResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"label": "POSITIVE", "confidence": 0.95, "score": 0.8},
			{"label": "negative", "confidence": 0.9, "score": -0.7}
		]}`))
	}))
	defer server.Close()

	svc := newTestSentimentService(server.URL)
	results := svc.AnalyzeComments(context.Background(), []string{"I love this bill", "This is terrible"})

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Sentiment != analysis.SentimentPositive {
		t.Errorf("Expected positive, got %s", results[0].Sentiment)
	}
	if results[1].Sentiment != analysis.SentimentNegative {
		t.Errorf("Expected negative, got %s", results[1].Sentiment)
	}
}

func TestAnalyzeCommentsFallsBackOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newTestSentimentService(server.URL)
	results := svc.AnalyzeComments(context.Background(), []string{"I strongly support this excellent proposal"})

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Sentiment != analysis.SentimentPositive {
		t.Errorf("Expected local scorer to classify as positive, got %s", results[0].Sentiment)
	}
}

func TestAnalyzeCommentsPartialResponse(t *testing.T) {
	// Remote returns fewer rows than comments; the tail uses the local scorer.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"label": "neutral", "confidence": 0.6, "score": 0.0}]}`))
	}))
	defer server.Close()

	svc := newTestSentimentService(server.URL)
	results := svc.AnalyzeComments(context.Background(), []string{"The meeting is Tuesday", "I oppose this harmful waste"})

	if results[0].Sentiment != analysis.SentimentNeutral {
		t.Errorf("Expected neutral from remote, got %s", results[0].Sentiment)
	}
	if results[1].Sentiment != analysis.SentimentNegative {
		t.Errorf("Expected negative from local fallback, got %s", results[1].Sentiment)
	}
}

func TestAnalyzeCommentsMalformedLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"label": "banana", "confidence": 0.5, "score": 0.2}]}`))
	}))
	defer server.Close()

	svc := newTestSentimentService(server.URL)
	results := svc.AnalyzeComments(context.Background(), []string{"I support this good bill"})

	// Unknown label means that row is rescored locally.
	if results[0].Sentiment != analysis.SentimentPositive {
		t.Errorf("Expected local rescoring, got %s", results[0].Sentiment)
	}
}

func TestAnalyzeCommentsClampsRemoteValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"label": "positive", "confidence": 3.5, "score": 9.0}]}`))
	}))
	defer server.Close()

	svc := newTestSentimentService(server.URL)
	results := svc.AnalyzeComments(context.Background(), []string{"great"})

	if results[0].Score != 1 {
		t.Errorf("Expected score clamped to 1, got %f", results[0].Score)
	}
	if results[0].Confidence != 1 {
		t.Errorf("Expected confidence clamped to 1, got %f", results[0].Confidence)
	}
}

func TestAnalyzeCommentsNoURL(t *testing.T) {
	svc := newTestSentimentService("")
	results := svc.AnalyzeComments(context.Background(), []string{"I favor this helpful initiative"})

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Sentiment != analysis.SentimentPositive {
		t.Errorf("Expected positive from local scorer, got %s", results[0].Sentiment)
	}
}
