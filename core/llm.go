package interview

import (
	"context"
	"errors"

	"github.com/hirevox/screener/core/llms"
)

// responseGenerator is the generation facade used to handle optional client
// wiring and error classification.
type responseGenerator struct {
	client ResponseGenerator
}

func (g *responseGenerator) set(client ResponseGenerator) {
	if g != nil {
		g.client = client
	}
}

func (g *responseGenerator) isConfigured() bool {
	return g != nil && g.client != nil
}

func (g *responseGenerator) generate(ctx context.Context, history []llms.Message, askedQuestions []string) (string, error) {
	if !g.isConfigured() {
		return "", &GenerationError{Err: errors.New("no response generator configured")}
	}

	reply, err := g.client.Generate(ctx, history, askedQuestions)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	return reply, nil
}
