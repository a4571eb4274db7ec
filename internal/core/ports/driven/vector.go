package driven

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// VectorIndex ranks candidates by embedding similarity.
// Backed by an exact cosine scan; corpora are small enough that
// approximate neighbour structures would cost more than they save.
// Implementations are immutable once built, like LexicalIndex.
type VectorIndex interface {
	// Search finds the k nearest candidates to the query vector,
	// most similar first. Candidates failing the filters are dropped
	// before k is applied.
	Search(ctx context.Context, query []float32, k int, filters domain.Filters) ([]VectorHit, error)

	// Size returns the number of indexed candidates.
	Size() int

	// Dimensions returns the vector size the index was built with.
	Dimensions() int
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// CandidateID is the matched candidate.
	CandidateID string

	// Similarity is the cosine similarity score (-1 to 1).
	Similarity float64
}
