package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/premesh-10/HealthMateAI/internal/domain/inference"
	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
	"github.com/premesh-10/HealthMateAI/internal/infra/ai/prompt"
)

const maxTokens = 2048

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Infer asks the model for condition guesses in strict JSON mode. An
// undecodable body yields an empty condition list, not an error; the
// pipeline downstream degrades via its fallbacks.
func (c *Client) Infer(ctx context.Context, symptoms string) (*triage.RawResult, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(symptoms)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return nil, inference.ErrQuotaExceeded
		}
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return &triage.RawResult{Disclaimer: triage.Disclaimer}, nil
	}

	return decodeResult(resp.Choices[0].Message.Content), nil
}

// decodeResult tolerates fenced or prose-wrapped output even though JSON
// mode is requested. Unparsable content degrades to an empty result.
func decodeResult(content string) *triage.RawResult {
	var raw triage.RawResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &raw); err != nil {
		return &triage.RawResult{Disclaimer: triage.Disclaimer}
	}
	if raw.Disclaimer == "" {
		raw.Disclaimer = triage.Disclaimer
	}
	return &raw
}

func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
