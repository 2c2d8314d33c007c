package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements the ExplanationService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance. An empty model name selects the default model.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Explain describes a finished allocation in a few plain sentences.
func (s *GeminiService) Explain(ctx context.Context, request *adapter.ExplanationRequest) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)
	model.SetMaxOutputTokens(400)

	resp, err := model.GenerateContent(ctx, genai.Text(buildExplanationPrompt(request)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractExplanation(resp)
}

// buildExplanationPrompt creates the prompt for Gemini.
func buildExplanationPrompt(request *adapter.ExplanationRequest) string {
	var sb strings.Builder

	sb.WriteString(`You help people understand how their monthly surplus was split across their savings goals.
The allocation below is final. Do not change, recompute or question any amount.

Write at most four short sentences in plain text, without markdown or lists:
- Say which goals received the most and why, using the classification.
- Mention goals that are ahead only briefly.
- Never pressure the user or mention failure.
`)

	tone := request.Tone
	if tone == "" {
		tone = "encouragement"
	}
	sb.WriteString(fmt.Sprintf("- Use a tone of %s.\n", tone))

	sb.WriteString(fmt.Sprintf("\nMONTHLY SURPLUS: %.2f\nSURPLUS USED: %.2f\n\nALLOCATIONS:\n", request.MonthlySurplus, request.SurplusUsed))
	if len(request.Goals) == 0 {
		sb.WriteString("(No goals)\n")
	}
	for _, g := range request.Goals {
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("goal %d", g.GoalID)
		}
		sb.WriteString(fmt.Sprintf("- %s: allocated %.2f, classification %s (ATR %.2f), reason: %s\n",
			name, g.AllocatedAmount, g.Classification, g.ATR, g.Reason))
	}

	if len(request.EpisodicSamples) > 0 {
		sb.WriteString("\nRECENT HISTORY (newest first, for continuity only):\n")
		for _, sample := range request.EpisodicSamples {
			sb.WriteString("- ")
			sb.WriteString(compactJSON(sample))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// extractExplanation returns the first text part of the response.
func extractExplanation(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			if trimmed := strings.TrimSpace(string(text)); trimmed != "" {
				return trimmed, nil
			}
		}
	}

	return "", fmt.Errorf("no text content in response")
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
