package adapters

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
)

func TestGeminiService_IsAvailable(t *testing.T) {
	if NewGeminiService("", "").IsAvailable() {
		t.Error("expected service without key to be unavailable")
	}
	if !NewGeminiService("key", "").IsAvailable() {
		t.Error("expected service with key to be available")
	}
}

func TestGeminiService_ExplainWithoutKey(t *testing.T) {
	_, err := NewGeminiService("", "").Explain(context.Background(), &adapter.ExplanationRequest{})
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("expected not configured error, got %v", err)
	}
}

func TestBuildExplanationPrompt(t *testing.T) {
	prompt := buildExplanationPrompt(&adapter.ExplanationRequest{
		UserID:         "u1",
		MonthlySurplus: 300000,
		SurplusUsed:    210000,
		Tone:           "calm",
		Goals: []adapter.ExplanationGoal{
			{GoalID: 7000, Name: "Emergency fund", ATR: 0.2, Classification: "critical", AllocatedAmount: 150000, Reason: "automatic allocation for critical goal (ATR=0.20)"},
			{GoalID: 8000, ATR: 1.5, Classification: "ahead", AllocatedAmount: 60000},
		},
		EpisodicSamples: []json.RawMessage{json.RawMessage("{\n  \"id\": \"e1\"\n}")},
	})

	for _, expected := range []string{
		"tone of calm",
		"MONTHLY SURPLUS: 300000.00",
		"SURPLUS USED: 210000.00",
		"- Emergency fund: allocated 150000.00, classification critical (ATR 0.20)",
		"- goal 8000: allocated 60000.00",
		`- {"id":"e1"}`,
	} {
		if !strings.Contains(prompt, expected) {
			t.Errorf("expected prompt to contain %q\n%s", expected, prompt)
		}
	}
}

func TestBuildExplanationPrompt_DefaultTone(t *testing.T) {
	prompt := buildExplanationPrompt(&adapter.ExplanationRequest{})

	if !strings.Contains(prompt, "tone of encouragement") {
		t.Errorf("expected default tone in prompt\n%s", prompt)
	}
	if !strings.Contains(prompt, "(No goals)") {
		t.Errorf("expected empty goal marker in prompt\n%s", prompt)
	}
	if strings.Contains(prompt, "RECENT HISTORY") {
		t.Errorf("expected no history section\n%s", prompt)
	}
}

func TestExtractExplanation(t *testing.T) {
	tests := []struct {
		name        string
		resp        *genai.GenerateContentResponse
		expected    string
		expectError bool
	}{
		{name: "nil response", resp: nil, expectError: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, expectError: true},
		{
			name: "text is trimmed",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("  Most of the surplus went to your emergency fund.\n")}},
			}}},
			expected: "Most of the surplus went to your emergency fund.",
		},
		{
			name: "blank text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("   ")}},
			}}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractExplanation(tt.resp)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
