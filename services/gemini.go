package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"civiclens/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var geminiClient *genai.Client

const geminiModel = "gemini-1.5-flash"

// InitGeminiService creates the shared Gemini client. A missing API key is not
// an error; the summarizer simply skips the Gemini path.
func InitGeminiService(cfg *config.Config) {
	if cfg.Gemini.ApiKey == "" {
		log.Println("Gemini API key not configured, AI summaries disabled")
		return
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		log.Printf("Failed to create Gemini client: %v", err)
		return
	}
	geminiClient = client
}

// SummarizeWithGemini asks the model for a short neutral summary of public
// comments on a bill. Returns an error when the client is unavailable or the
// response cannot be used; the caller falls back to the local summarizer.
func SummarizeWithGemini(ctx context.Context, topic string, comments []string) (string, error) {
	if geminiClient == nil {
		return "", errors.New("Gemini client not initialized")
	}
	if len(comments) == 0 {
		return "", errors.New("no comments to summarize")
	}

	prompt := fmt.Sprintf(
		`Summarize the public comments below on the draft legislation "%s". The summary must:
- Be 2-4 sentences of neutral prose.
- Capture the main points of support and opposition.
- Not quote commenters directly or address the reader.

Required Output Format (JSON):
{"summary": "text"}

Comments:
%s`,
		topic,
		strings.Join(comments, "\n"),
	)

	model := geminiClient.GenerativeModel(geminiModel)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockLowAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockLowAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockLowAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockLowAndAbove},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no summary returned")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			continue
		}
		cleanedText := strings.TrimSpace(string(text))
		cleanedText = strings.TrimPrefix(cleanedText, "```json")
		cleanedText = strings.TrimSuffix(cleanedText, "```")
		cleanedText = strings.TrimSpace(cleanedText)

		var out struct {
			Summary string `json:"summary"`
		}
		if err := json.Unmarshal([]byte(cleanedText), &out); err != nil {
			log.Printf("Failed to parse Gemini summary JSON: %v. Raw: %s", err, cleanedText)
			return "", err
		}
		if out.Summary == "" {
			return "", errors.New("empty summary in response")
		}
		return out.Summary, nil
	}

	return "", errors.New("unexpected response format")
}
