package driving

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// SearchService locates and ranks candidates for free-text queries.
type SearchService interface {
	// Search interprets the query, runs the configured retrieval
	// strategy and returns one page of explained, labelled results.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// Interpret extracts structured filters and the expanded query
	// without running a search. Used by callers that want to show
	// what would be searched.
	Interpret(query string) (*domain.ExpandedQuery, domain.Filters)
}
