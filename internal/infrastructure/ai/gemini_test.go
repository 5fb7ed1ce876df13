package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"health-management/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"googleapi 429", &googleapi.Error{Code: 429}, true},
		{"wrapped googleapi 429", fmt.Errorf("generate content: %w", &googleapi.Error{Code: 429}), true},
		{"googleapi 500", &googleapi.Error{Code: 500, Message: "backend error"}, false},
		{"grpc resource exhausted", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{"quota message", errors.New("You exceeded your current quota"), true},
		{"bad request", errors.New("invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}

func TestGeminiClient_NotConfigured(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), config.GeminiConfig{Model: "gemini-2.0-flash"})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NoError(t, client.Close())
}
