package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ceyloncircuit/internal/models/session_models"
)

// GeminiClient is the free-tier alternative to the OpenAI client. Same
// contract, same fixed sampling budget.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(apiKey, model string) (CompletionClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, systemPrompt string, history []session_models.Message, userMessage string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(completionTemperature)
	m.SetMaxOutputTokens(completionMaxTokens)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	session := m.StartChat()
	for _, msg := range history {
		role := "user"
		if msg.Role == session_models.RoleAssistant {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		log.Printf("Gemini completion failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrCompletionFailure, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrCompletionFailure)
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
