package mock

import (
	"context"

	"github.com/fwojciec/profiled"
)

var _ profiled.TextGenerator = (*TextGenerator)(nil)

// TextGenerator is a mock implementation of profiled.TextGenerator.
type TextGenerator struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (g *TextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateFn(ctx, prompt)
}
