// Package index assembles and swaps the immutable retrieval handles.
// The bm25 and memvec indexes never change after construction; this
// package owns the one mutable cell that points at the current pair.
package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/index/bm25"
	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/index/memvec"
	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// Provider builds corpus snapshots from the candidate store and hands
// out the current one. Refresh replaces the snapshot atomically;
// requests holding an older snapshot keep ranking against the
// generation they started with.
type Provider struct {
	store    driven.CandidateStore
	embedder driven.EmbeddingService
	k1       float64
	b        float64

	mu       sync.RWMutex
	snapshot driven.CorpusSnapshot
}

var _ driven.CorpusProvider = (*Provider)(nil)

// NewProvider creates a provider over the store. A nil embedder means
// no embedding provider is configured; snapshots then carry no vector
// index and the semantic leg reports itself unavailable. The snapshot
// starts empty; call Refresh before serving searches.
func NewProvider(store driven.CandidateStore, embedder driven.EmbeddingService, k1, b float64) *Provider {
	p := &Provider{
		store:    store,
		embedder: embedder,
		k1:       k1,
		b:        b,
	}
	p.snapshot = emptySnapshot(embedder)
	return p
}

// Refresh rebuilds both indexes from the candidate store and swaps
// them in. The old snapshot is untouched, so a failed rebuild leaves
// the previous generation serving.
func (p *Provider) Refresh(ctx context.Context) error {
	candidates, err := p.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list candidates: %w", err)
	}

	lexical := bm25.NewIndex(candidates, p.k1, p.b)

	var vector driven.VectorIndex
	if p.embedder != nil {
		idx, err := memvec.NewIndex(candidates, p.embedder.Dimensions())
		if err != nil {
			return fmt.Errorf("build vector index: %w", err)
		}
		vector = idx
	}

	byID := make(map[string]*domain.Candidate, len(candidates))
	for i := range candidates {
		byID[candidates[i].ID] = &candidates[i]
	}

	p.mu.Lock()
	p.snapshot = driven.CorpusSnapshot{
		Lexical:    lexical,
		Vector:     vector,
		Candidates: byID,
		Count:      len(candidates),
	}
	p.mu.Unlock()
	return nil
}

// Snapshot returns the current immutable snapshot.
func (p *Provider) Snapshot() driven.CorpusSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

func emptySnapshot(embedder driven.EmbeddingService) driven.CorpusSnapshot {
	snapshot := driven.CorpusSnapshot{
		Lexical:    bm25.NewIndex(nil, 1.5, 0.75),
		Candidates: map[string]*domain.Candidate{},
	}
	if embedder != nil {
		snapshot.Vector, _ = memvec.NewIndex(nil, embedder.Dimensions())
	}
	return snapshot
}
