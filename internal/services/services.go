package services

import (
	"context"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
)

// Searcher is implemented by video search providers.
type Searcher interface {
	// Search resolves a free-text query to display-ready video results.
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}
