package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"civiclens/analysis"
	"civiclens/config"
)

// SummaryService produces a short summary of a batch of comments. It tries, in
// order: the configured remote endpoint, the Gemini model, and finally the
// local extractive summarizer. Failures are never surfaced to callers.
type SummaryService struct {
	url    string
	client *http.Client
}

var summaryService *SummaryService

// InitSummaryService configures the shared summary service
func InitSummaryService(cfg *config.Config) {
	timeout := time.Duration(cfg.Analysis.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	summaryService = &SummaryService{
		url:    cfg.Analysis.SummaryURL,
		client: &http.Client{Timeout: timeout},
	}
}

// GetSummaryService returns the shared summary service
func GetSummaryService() *SummaryService {
	return summaryService
}

// Summarize returns a summary of the comments and the name of the engine that
// produced it ("remote", "gemini" or "local").
func (s *SummaryService) Summarize(ctx context.Context, topic string, comments []string) (string, string) {
	if s.url != "" && len(comments) > 0 {
		if summary, err := s.fetchRemote(ctx, comments); err != nil {
			log.Printf("Remote summary failed: %v", err)
		} else if summary != "" {
			return summary, "remote"
		}
	}

	if summary, err := SummarizeWithGemini(ctx, topic, comments); err != nil {
		log.Printf("Gemini summary failed, using local summarizer: %v", err)
	} else if summary != "" {
		return summary, "gemini"
	}

	return analysis.Summarize(strings.Join(comments, " "), analysis.DefaultSummarizerOptions()), "local"
}

type summaryRequest struct {
	Comments []string `json:"comments"`
}

func (s *SummaryService) fetchRemote(ctx context.Context, comments []string) (string, error) {
	payload, err := json.Marshal(summaryRequest{Comments: comments})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error: %s", string(body))
	}

	return ExtractSummaryText(body), nil
}

var summaryFieldRe = regexp.MustCompile(`['"]?summary['"]?\s*:\s*['"](.*?)['"]\s*[,}]`)

// ExtractSummaryText recovers the summary string from a loosely-typed response
// body. The endpoint has been observed to return a proper JSON object, a JSON
// string wrapping a serialized pseudo-object ("{ summary: '...' }"), or plain
// text. Parsing is best-effort; the raw body is the last resort.
func ExtractSummaryText(body []byte) string {
	// Well-formed object with a summary field.
	var obj struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.Summary != "" {
		return strings.TrimSpace(obj.Summary)
	}

	// A JSON string, possibly wrapping a serialized pseudo-object.
	var str string
	if err := json.Unmarshal(body, &str); err == nil {
		return extractFromLooseString(str)
	}

	return extractFromLooseString(string(body))
}

// extractFromLooseString pulls a summary field out of a non-standard
// serialized-object string, falling back to the raw string.
func extractFromLooseString(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	if m := summaryFieldRe.FindStringSubmatch(trimmed); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}

	// Some variants quote keys but not with JSON-legal syntax; retry after
	// normalizing single quotes so the object form parses.
	if strings.HasPrefix(trimmed, "{") {
		normalized := strings.ReplaceAll(trimmed, "'", "\"")
		var obj struct {
			Summary string `json:"summary"`
		}
		if err := json.Unmarshal([]byte(normalized), &obj); err == nil && obj.Summary != "" {
			return strings.TrimSpace(obj.Summary)
		}
	}

	return trimmed
}
