// Package bm25 implements keyword ranking over candidate profiles with
// Okapi BM25. An Index is built once from a candidate slice and never
// mutated afterwards; corpus changes are handled by building a fresh
// Index and swapping handles, which keeps concurrent reads lock-free.
package bm25

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// Index ranks candidates by BM25 relevance over weighted pseudo
// documents. Safe for concurrent use.
type Index struct {
	k1 float64
	b  float64

	// docs and candidates share indices and keep corpus insertion
	// order, which is the tie-break order for equal scores.
	docs       []document
	candidates []domain.Candidate

	df     map[string]int
	avgLen float64
}

var _ driven.LexicalIndex = (*Index)(nil)

type document struct {
	id     string
	tf     map[string]int
	length int
}

// NewIndex builds an immutable BM25 index over the candidates.
func NewIndex(candidates []domain.Candidate, k1, b float64) *Index {
	idx := &Index{
		k1:         k1,
		b:          b,
		docs:       make([]document, 0, len(candidates)),
		candidates: candidates,
		df:         make(map[string]int),
	}

	totalLen := 0
	for _, candidate := range candidates {
		tokens := Tokenize(pseudoDocument(&candidate))
		doc := document{
			id:     candidate.ID,
			tf:     make(map[string]int, len(tokens)),
			length: len(tokens),
		}
		for _, token := range tokens {
			doc.tf[token]++
		}
		for token := range doc.tf {
			idx.df[token]++
		}
		totalLen += doc.length
		idx.docs = append(idx.docs, doc)
	}

	if len(idx.docs) > 0 {
		idx.avgLen = float64(totalLen) / float64(len(idx.docs))
	}
	return idx
}

// pseudoDocument assembles the text BM25 ranks a candidate by. Field
// weighting is done by repetition: the role appears three times, tools
// twice, and the front half of the skill list twice, so a role hit
// outranks a stray description hit.
func pseudoDocument(c *domain.Candidate) string {
	var parts []string

	for i := 0; i < 3; i++ {
		parts = append(parts, c.Role)
	}
	parts = append(parts, c.Industry, c.CompanyName)

	if c.Remote {
		parts = append(parts, "remote")
	} else {
		parts = append(parts, "onsite office")
	}

	tools := strings.Join(c.Tools, " ")
	parts = append(parts, tools, tools)

	parts = append(parts, strings.Join(c.Skills, " "))
	if n := len(c.Skills); n > 0 {
		parts = append(parts, strings.Join(c.Skills[:n/2+1], " "))
	}

	parts = append(parts, c.Description)
	return strings.Join(parts, " ")
}

// Tokenize lowercases text, splits on anything that is not a letter or
// digit and drops stopwords.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if stopwords[field] {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// Search ranks candidates against the query terms. Only candidates
// with a positive score are considered; the filter predicate prunes
// the sorted ranking without re-scoring survivors, then the list is
// cut to limit.
func (idx *Index) Search(ctx context.Context, terms []string, limit int, filters domain.Filters) ([]driven.LexicalHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 || len(idx.docs) == 0 {
		return nil, nil
	}

	// Query terms go through the same tokenizer as documents so the
	// two sides can never disagree about stopwords or casing.
	queryTokens := Tokenize(strings.Join(terms, " "))
	if len(queryTokens) == 0 {
		return nil, nil
	}

	type scored struct {
		pos   int
		score float64
	}
	var ranked []scored
	for pos := range idx.docs {
		score := idx.score(&idx.docs[pos], queryTokens)
		if score > 0 {
			ranked = append(ranked, scored{pos: pos, score: score})
		}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	hits := make([]driven.LexicalHit, 0, limit)
	for _, entry := range ranked {
		if !filters.Matches(&idx.candidates[entry.pos]) {
			continue
		}
		hits = append(hits, driven.LexicalHit{
			CandidateID: idx.docs[entry.pos].id,
			Score:       entry.score,
		})
		if len(hits) == limit {
			break
		}
	}
	return hits, nil
}

// Size returns the number of indexed candidates.
func (idx *Index) Size() int {
	return len(idx.docs)
}

func (idx *Index) score(doc *document, queryTokens []string) float64 {
	if doc.length == 0 {
		return 0
	}

	n := float64(len(idx.docs))
	norm := idx.k1 * (1 - idx.b + idx.b*float64(doc.length)/idx.avgLen)

	score := 0.0
	for _, token := range queryTokens {
		tf := float64(doc.tf[token])
		if tf == 0 {
			continue
		}
		df := float64(idx.df[token])
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))
		score += idf * (tf * (idx.k1 + 1)) / (tf + norm)
	}
	return score
}
