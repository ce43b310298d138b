package analysis

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/NutriVision/internal/nutrition"
)

// OpenAITransport sends analysis requests to an OpenAI-compatible
// chat-completions endpoint with a JSON-schema response format.
type OpenAITransport struct {
	client *openai.Client
	model  string
}

// NewOpenAITransport creates a transport for the given credentials. baseURL
// may be empty for the default endpoint. A zero timeout leaves the HTTP
// client without one.
func NewOpenAITransport(apiKey, baseURL, model string, timeout time.Duration) *OpenAITransport {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &OpenAITransport{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

// Request performs exactly one chat completion and returns the content of
// the first choice, or "" when the model produced none.
func (t *OpenAITransport) Request(ctx context.Context, req nutrition.AnalysisRequest) (string, error) {
	schema := req.Schema

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       t.model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL(req.Image),
							Detail: openai.ImageURLDetailHigh,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: req.Instruction,
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   nutrition.SchemaName,
				Schema: &schema,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func dataURL(image nutrition.MealImage) string {
	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}
