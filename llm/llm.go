package llm

import (
	"context"

	"menu-analyze-service/models"
	"menu-analyze-service/prompt"
)

// Client abstracts the inference provider used by the analyzer.
// Implementations must be safe for concurrent use.
type Client interface {
	// AnalyzeMenu submits the ordered content fragments and returns the
	// structured menu result extracted from the provider's forced tool call.
	// Failures preserve enough raw context to debug; they are never coerced
	// into an empty success result.
	AnalyzeMenu(ctx context.Context, fragments []prompt.Fragment) (*models.MenuAnalysis, error)
	// SourceName returns a short provider label for logs (e.g., "OpenAI", "Stub").
	SourceName() string
}
