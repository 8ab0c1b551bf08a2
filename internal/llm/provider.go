package llm

import "context"

// Provider is the text-generation collaborator. It is deliberately a
// pure prompt -> text function so the parsing and validation layers can
// be tested against a canned implementation.
type Provider interface {
	// Generate sends a prompt and returns the model's free-text reply.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}
