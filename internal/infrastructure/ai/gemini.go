package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"health-management/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var (
	ErrNotConfigured = errors.New("GEMINI_API_KEY is not configured")
	ErrEmptyResponse = errors.New("model returned no text")
)

// GeminiClient sends a single prompt to a Gemini model and returns its text.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient returns a client that fails every call with
// ErrNotConfigured when no API key is set.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return &GeminiClient{model: cfg.Model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}

	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		if b.Len() > 0 {
			break
		}
	}

	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// IsRateLimited reports whether err is the provider refusing a request for
// rate or quota reasons. Only these failures are worth retrying.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "resource_exhausted", "resource exhausted", "quota", "rate limit"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
