package generation

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Generator wraps a Provider with bounded exponential-backoff retry on
// transient failures.
type Generator struct {
	provider Provider
}

// NewGenerator creates a Generator over the given provider.
func NewGenerator(provider Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate produces a text response for the prompt, retrying rate-limit and
// server-side errors. Other failures are returned immediately.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var text string

	operation := func() error {
		result, err := g.provider.GenerateText(ctx, prompt)
		if err != nil {
			if isRetryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		text = result
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	return text, err
}
