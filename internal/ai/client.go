package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newslens/newslens-backend/internal/pkg/logger"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Completer is the chat-completion capability consumed by the analysis
// layer. Kept minimal so tests can substitute a scripted fake.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config holds LLM provider settings
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Timeout   time.Duration
	MaxTokens int // prompt content token budget
}

// Client implements Completer over an OpenAI-compatible chat API
type Client struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// NewClient creates a chat-completion client
func NewClient(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("ai: api key is required")
	}
	if log == nil {
		log = logger.L()
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	log.Info("ai client created",
		zap.String("model", model),
		zap.Duration("timeout", timeout))

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		logger: log,
	}, nil
}

// Complete runs one chat completion and returns the first choice's text
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
