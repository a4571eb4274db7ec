package httpapi

import (
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the HTTP API serves.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides candidate search.
	Search driving.SearchService

	// Candidates manages the corpus and saved candidates.
	Candidates driving.CandidateService

	// History manages search history and analytics.
	History driving.HistoryService

	// Recommend produces query suggestions.
	Recommend driving.RecommendService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Candidates == nil {
		return ErrMissingCandidateService
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	if p.Recommend == nil {
		return ErrMissingRecommendService
	}
	return nil
}
