package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiModelName      = "gemini-2.0-flash"
	mcqTemperature       = 0.7
	mcqMaxOutputTokens   = 300
	mcqSystemInstruction = "You are a helpful quiz generator that outputs only valid JSON."
)

// TextGenerator is the single model-facing operation: one prompt in, raw
// completion text out. No retries at this layer or above.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiService(apiKey string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModelName)
	model.SetTemperature(mcqTemperature)
	model.SetMaxOutputTokens(mcqMaxOutputTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(mcqSystemInstruction)},
	}

	return &GeminiService{client: client, model: model}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// stripCodeFence removes a leading/trailing markdown code fence, with or
// without a language tag, before JSON parsing.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		rest := strings.TrimPrefix(s, "```")
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			firstLine := strings.TrimSpace(rest[:i])
			if firstLine == "" || isFenceTag(firstLine) {
				rest = rest[i+1:]
			}
		} else {
			rest = strings.TrimPrefix(rest, "json")
		}
		s = rest
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
