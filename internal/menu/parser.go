package menu

import "context"

// Parser converts raw OCR/PDF-extracted text into a weekly menu.
// Two implementations exist: the deterministic rule engine
// (internal/parser) and the LLM-backed parser (internal/llm). The ingest
// service picks one per configuration and falls back to the other, so
// both must produce the same WeeklyMenu shape.
type Parser interface {
	ParseMenu(ctx context.Context, rawText string) (*WeeklyMenu, error)
}
