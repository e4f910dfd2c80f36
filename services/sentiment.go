package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"civiclens/analysis"
	"civiclens/config"
)

// SentimentService classifies batches of comments against a remote endpoint,
// degrading to the local lexical scorer on any failure. Failures are never
// surfaced to callers.
type SentimentService struct {
	url    string
	client *http.Client
	scorer *analysis.SentimentScorer
}

var sentimentService *SentimentService

// InitSentimentService configures the shared sentiment service
func InitSentimentService(cfg *config.Config) {
	timeout := time.Duration(cfg.Analysis.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sentimentService = &SentimentService{
		url:    cfg.Analysis.SentimentURL,
		client: &http.Client{Timeout: timeout},
		scorer: analysis.NewSentimentScorer(),
	}
}

// GetSentimentService returns the shared sentiment service
func GetSentimentService() *SentimentService {
	return sentimentService
}

type sentimentRequest struct {
	Comments []string `json:"comments"`
}

type sentimentRow struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Score      float64 `json:"score"`
}

type sentimentResponse struct {
	Results []sentimentRow `json:"results"`
}

// AnalyzeComments scores each comment. The remote endpoint is asked first;
// any error, malformed row or short response falls back to the local scorer
// for the affected comments. The passed context cancels the in-flight request.
func (s *SentimentService) AnalyzeComments(ctx context.Context, comments []string) []analysis.AnalyzedComment {
	results := make([]analysis.AnalyzedComment, len(comments))
	for i := range results {
		results[i] = analysis.AnalyzedComment{Text: comments[i], Sentiment: ""}
	}

	if s.url != "" && len(comments) > 0 {
		if rows, err := s.fetchRemote(ctx, comments); err != nil {
			log.Printf("Remote sentiment failed, using local scorer: %v", err)
		} else {
			for i := range comments {
				if i >= len(rows) {
					break
				}
				if label := normalizeLabel(rows[i].Label); label != "" {
					results[i] = analysis.AnalyzedComment{
						Text:       comments[i],
						Sentiment:  label,
						Score:      clampScore(rows[i].Score),
						Confidence: clampConfidence(rows[i].Confidence),
					}
				}
			}
		}
	}

	for i := range results {
		if results[i].Sentiment == "" {
			results[i] = s.scorer.Score(comments[i])
		}
	}
	return results
}

// ScoreLocal scores a single comment with the local lexical scorer only.
func (s *SentimentService) ScoreLocal(text string) analysis.AnalyzedComment {
	return s.scorer.Score(text)
}

func (s *SentimentService) fetchRemote(ctx context.Context, comments []string) ([]sentimentRow, error) {
	payload, err := json.Marshal(sentimentRequest{Comments: comments})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	var parsed sentimentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return parsed.Results, nil
}

func normalizeLabel(label string) analysis.Sentiment {
	switch label {
	case "positive", "POSITIVE", "pos":
		return analysis.SentimentPositive
	case "negative", "NEGATIVE", "neg":
		return analysis.SentimentNegative
	case "neutral", "NEUTRAL":
		return analysis.SentimentNeutral
	}
	return ""
}

func clampScore(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
