package openai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gutly/internal/config"

	goopenai "github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned on every call while OPENAI_API_KEY is unset.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is not set. Add it to your .env file and restart the server")

// MealScorer sends one meal image to the vision model and returns its raw reply.
type MealScorer interface {
	ScoreMeal(ctx context.Context, imageDataURI string) (string, error)
}

// InsightGenerator asks the model for history-based insights.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client wraps the OpenAI chat completion API. The underlying API client is
// built on first use so a missing key only fails the requests that need it.
type Client struct {
	cfg          config.OpenAIConfig
	systemPrompt string
	userPrompt   string

	once sync.Once
	api  *goopenai.Client
}

func NewClient(cfg config.OpenAIConfig, systemPrompt, userPrompt string) *Client {
	if cfg.Model == "" {
		cfg.Model = goopenai.GPT4oMini
	}
	return &Client{
		cfg:          cfg,
		systemPrompt: systemPrompt,
		userPrompt:   userPrompt,
	}
}

func (c *Client) client() (*goopenai.Client, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	c.once.Do(func() {
		apiCfg := goopenai.DefaultConfig(c.cfg.APIKey)
		if c.cfg.BaseURL != "" {
			apiCfg.BaseURL = c.cfg.BaseURL
		}
		c.api = goopenai.NewClientWithConfig(apiCfg)
	})
	return c.api, nil
}

func (c *Client) ScoreMeal(ctx context.Context, imageDataURI string) (string, error) {
	api, err := c.client()
	if err != nil {
		return "", err
	}

	req := goopenai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: c.systemPrompt},
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{Type: goopenai.ChatMessagePartTypeText, Text: c.userPrompt},
					{
						Type:     goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{URL: imageDataURI, Detail: goopenai.ImageURLDetailAuto},
					},
				},
			},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    c.cfg.AnalysisTemperature,
	}

	return c.complete(ctx, api, req)
}

func (c *Client) GenerateInsights(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	api, err := c.client()
	if err != nil {
		return "", err
	}

	req := goopenai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    c.cfg.InsightsTemperature,
	}

	return c.complete(ctx, api, req)
}

// complete runs a single completion. An empty reply is reported as "{}" and
// left for the caller's validation to reject.
func (c *Client) complete(ctx context.Context, api *goopenai.Client, req goopenai.ChatCompletionRequest) (string, error) {
	resp, err := api.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("OpenAI API error: %s", apiErr.Message)
		}
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "{}", nil
	}
	return resp.Choices[0].Message.Content, nil
}
