// Package hash provides the built-in embedding service. It feature-
// hashes tokens and character trigrams into a fixed-size vector, which
// gives deterministic, offline embeddings with no model download.
// Quality sits well below a learned model, but overlapping vocabulary
// still lands near itself in the space, and that is enough for local
// corpora, tests and first runs before an external provider is
// configured.
package hash

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	ModelName         = "feature-hash-v1"
	DefaultDimensions = 384
)

// EmbeddingService generates deterministic feature-hash embeddings.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a feature-hash embedder. A dimensions
// value of zero selects the default.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed generates a vector embedding for the given text. Identical
// text always produces an identical vector.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, s.dimensions)

	for _, token := range tokenize(text) {
		s.addFeature(vector, token, 1.0)
		// Character trigrams soften exact-token matching so related
		// word forms share features.
		for _, gram := range trigrams(token) {
			s.addFeature(vector, gram, 0.5)
		}
	}

	normalize(vector)
	return vector, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Ping always succeeds; there is no service behind this provider.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// addFeature hashes the feature into a dimension and a sign. Signed
// accumulation keeps unrelated collisions close to zero in
// expectation.
func (s *EmbeddingService) addFeature(vector []float32, feature string, weight float32) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()

	dim := int(sum % uint64(s.dimensions))
	if sum>>63 == 1 {
		weight = -weight
	}
	vector[dim] += weight
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func trigrams(token string) []string {
	if len(token) < 3 {
		return nil
	}
	grams := make([]string, 0, len(token)-2)
	for i := 0; i+3 <= len(token); i++ {
		grams = append(grams, token[i:i+3])
	}
	return grams
}

func normalize(vector []float32) {
	sum := 0.0
	for _, x := range vector {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vector {
		vector[i] /= norm
	}
}
