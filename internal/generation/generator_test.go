package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls    int
	response string
	err      error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestGenerate_ReturnsProviderText(t *testing.T) {
	provider := &stubProvider{response: "Use Exit B."}
	generator := NewGenerator(provider)

	text, err := generator.Generate(context.Background(), "how do I evacuate")
	require.NoError(t, err)
	assert.Equal(t, "Use Exit B.", text)
	assert.Equal(t, 1, provider.calls)
}

func TestGenerate_PermanentErrorFailsFast(t *testing.T) {
	provider := &stubProvider{err: errors.New("invalid model")}
	generator := NewGenerator(provider)

	_, err := generator.Generate(context.Background(), "how do I evacuate")
	require.Error(t, err)
	assert.Equal(t, 1, provider.calls, "non-retryable errors must not be retried")
}

func TestNewProvider_UnknownBackend(t *testing.T) {
	_, err := NewProvider(context.Background(), "mystery", "some-model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported generation provider")
}
