package link

import (
	"context"
)

// PageContent holds the metadata derived from a scraped page.
type PageContent struct {
	Title    string
	Content  string
	Favicon  string
	Domain   string
	ReadTime string
}

// AIClient is the external summarization/embedding collaborator. Both calls
// may fail independently; the pipeline substitutes deterministic fallbacks.
type AIClient interface {
	GenerateSummary(ctx context.Context, content, title string) (string, error)
	EmbedText(ctx context.Context, text string) ([]float64, error)
}
