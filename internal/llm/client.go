package llm

import "context"

// Client sends raw menu text to a language model and returns the model's
// text output, envelope and all. Unwrapping and validation happen in
// Parser.ParseMenu, identically for every backend.
type Client interface {
	GenerateMenu(ctx context.Context, rawText string) (string, error)
}
