// Package memvec implements similarity ranking over candidate
// embeddings with an exact cosine scan. Corpora are a few thousand
// profiles at most, where a brute-force scan beats approximate
// neighbour structures on both simplicity and build time. An Index is
// immutable once built, mirroring the bm25 package.
package memvec

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// Index ranks candidates by cosine similarity to a query vector.
// Safe for concurrent use.
type Index struct {
	dimensions int

	// entries keeps corpus insertion order, the tie-break order for
	// equal similarities.
	entries    []entry
	candidates []domain.Candidate
}

var _ driven.VectorIndex = (*Index)(nil)

type entry struct {
	id     string
	vector []float32
	norm   float64
}

// NewIndex builds an immutable similarity index over the candidates.
// Candidates without an embedding are skipped; candidates whose
// embedding size disagrees with dimensions are an error, because a
// silent dimension mismatch would rank them all at zero.
func NewIndex(candidates []domain.Candidate, dimensions int) (*Index, error) {
	idx := &Index{dimensions: dimensions}

	for _, candidate := range candidates {
		if len(candidate.Embedding) == 0 {
			continue
		}
		if len(candidate.Embedding) != dimensions {
			return nil, fmt.Errorf("candidate %s: embedding has %d dimensions, index expects %d",
				candidate.ID, len(candidate.Embedding), dimensions)
		}
		idx.entries = append(idx.entries, entry{
			id:     candidate.ID,
			vector: candidate.Embedding,
			norm:   vectorNorm(candidate.Embedding),
		})
		idx.candidates = append(idx.candidates, candidate)
	}
	return idx, nil
}

// Search returns the k candidates most similar to the query vector.
// The filter predicate prunes the ranked list before k is applied.
func (idx *Index) Search(ctx context.Context, query []float32, k int, filters domain.Filters) ([]driven.VectorHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 || len(idx.entries) == 0 {
		return nil, nil
	}
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, index expects %d", len(query), idx.dimensions)
	}

	queryNorm := vectorNorm(query)
	if queryNorm == 0 {
		return nil, nil
	}

	type scored struct {
		pos        int
		similarity float64
	}
	ranked := make([]scored, 0, len(idx.entries))
	for pos := range idx.entries {
		e := &idx.entries[pos]
		if e.norm == 0 {
			continue
		}
		ranked = append(ranked, scored{
			pos:        pos,
			similarity: dotProduct(query, e.vector) / (queryNorm * e.norm),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].similarity > ranked[j].similarity
	})

	hits := make([]driven.VectorHit, 0, k)
	for _, entry := range ranked {
		if !filters.Matches(&idx.candidates[entry.pos]) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			CandidateID: idx.entries[entry.pos].id,
			Similarity:  entry.similarity,
		})
		if len(hits) == k {
			break
		}
	}
	return hits, nil
}

// Size returns the number of indexed candidates.
func (idx *Index) Size() int {
	return len(idx.entries)
}

// Dimensions returns the vector size the index was built with.
func (idx *Index) Dimensions() int {
	return idx.dimensions
}

func dotProduct(a []float32, b []float32) float64 {
	sum := 0.0
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func vectorNorm(v []float32) float64 {
	sum := 0.0
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
