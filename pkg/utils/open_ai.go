package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"ceyloncircuit/internal/models/session_models"
)

// CompletionClientInterface is the boundary to the external text-completion
// collaborator. Prompt in, free text (with embedded markers) out; nothing
// in the core touches a vendor SDK directly.
type CompletionClientInterface interface {
	Complete(ctx context.Context, systemPrompt string, history []session_models.Message, userMessage string) (string, error)
}

const (
	completionTemperature = 0.7
	completionMaxTokens   = 500
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient() CompletionClientInterface {
	model := os.Getenv("TRIPBOT_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{
		client: openai.NewClient(os.Getenv("OPENAI_API_KEY")),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt string, history []session_models.Message, userMessage string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == session_models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		// Status only affects diagnostics; callers show the same
		// apologetic reply regardless.
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Printf("OpenAI completion failed with status %d: %v", apiErr.HTTPStatusCode, err)
		} else {
			log.Printf("OpenAI completion failed: %v", err)
		}
		return "", fmt.Errorf("%w: %v", ErrCompletionFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrCompletionFailure)
	}
	return resp.Choices[0].Message.Content, nil
}
