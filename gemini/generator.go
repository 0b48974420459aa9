package gemini

import (
	"context"

	"github.com/fwojciec/profiled"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements profiled.TextGenerator at compile time.
var _ profiled.TextGenerator = (*Generator)(nil)

// Generator implements profiled.TextGenerator using Google Gemini.
type Generator struct {
	client    *genai.Client
	model     string
	counter   *TokenCounter
	maxTokens int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTokenBudget rejects prompts counted above max tokens before any
// request is sent.
func WithTokenBudget(counter *TokenCounter, max int) GeneratorOption {
	return func(g *Generator) {
		g.counter = counter
		g.maxTokens = max
	}
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string, opts ...GeneratorOption) *Generator {
	if model == "" {
		model = DefaultModel
	}
	g := &Generator{client: client, model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends prompt as a single user turn and returns the reply text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", profiled.Errorf(profiled.EINVALID, "prompt required")
	}

	if g.counter != nil && g.maxTokens > 0 {
		n, err := g.counter.CountTokens(ctx, prompt)
		if err != nil {
			return "", err
		}
		if n > g.maxTokens {
			return "", profiled.Errorf(profiled.EINVALID, "prompt has %d tokens, budget is %d", n, g.maxTokens)
		}
	}

	if g.client == nil {
		return "", profiled.Errorf(profiled.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", profiled.Errorf(profiled.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an assistant that lists professional skills implied by a person's career profile. Reply with skill names only, exactly in the requested format.",
			}},
		},
		Temperature: &temp,
	}
}
