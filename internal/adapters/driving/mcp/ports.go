package mcp

import (
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces the MCP server uses.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides candidate search.
	Search driving.SearchService

	// Candidates manages the corpus and saved candidates.
	Candidates driving.CandidateService

	// History provides search history access.
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
	// Candidates, History and Recommend are optional; the tools that
	// need them report an error when invoked without them.
	return nil
}
