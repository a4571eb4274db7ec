package domain

const unknownDescription = "Unknown"

// RetrievalStrategy selects how a search ranks the corpus. It replaces
// string comparison at call sites: one orchestration switch consumes
// the enum and nothing else dispatches on it.
type RetrievalStrategy string

// Available retrieval strategies.
const (
	// StrategyHybrid fuses keyword and semantic rankings. The default.
	StrategyHybrid RetrievalStrategy = "hybrid"

	// StrategyLexical ranks by keyword match only.
	StrategyLexical RetrievalStrategy = "lexical"

	// StrategySemantic ranks by embedding similarity only.
	StrategySemantic RetrievalStrategy = "semantic"
)

// IsValid returns true if the strategy is recognised.
func (s RetrievalStrategy) IsValid() bool {
	switch s {
	case StrategyHybrid, StrategyLexical, StrategySemantic:
		return true
	default:
		return false
	}
}

// RequiresEmbedding returns true if this strategy needs an embedding
// provider.
func (s RetrievalStrategy) RequiresEmbedding() bool {
	return s == StrategyHybrid || s == StrategySemantic
}

// RequiresLexicalIndex returns true if this strategy needs the keyword
// index.
func (s RetrievalStrategy) RequiresLexicalIndex() bool {
	return s == StrategyHybrid || s == StrategyLexical
}

// String returns the string representation.
func (s RetrievalStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s RetrievalStrategy) Description() string {
	switch s {
	case StrategyHybrid:
		return "Hybrid (keyword + semantic, rank fusion)"
	case StrategyLexical:
		return "Lexical (keyword ranking only)"
	case StrategySemantic:
		return "Semantic (embedding similarity only)"
	default:
		return unknownDescription
	}
}

// AllRetrievalStrategies returns all available strategies.
func AllRetrievalStrategies() []RetrievalStrategy {
	return []RetrievalStrategy{
		StrategyHybrid,
		StrategyLexical,
		StrategySemantic,
	}
}

// EmbeddingProvider identifies a service that turns text into vectors.
type EmbeddingProvider string

// Available embedding providers.
const (
	// ProviderHash is the built-in deterministic feature-hash encoder.
	// No external service, works offline; quality is well below a
	// learned model but adequate for local corpora and tests.
	ProviderHash EmbeddingProvider = "hash"

	// ProviderOllama is a local Ollama instance.
	ProviderOllama EmbeddingProvider = "ollama"

	// ProviderOpenAI is the OpenAI cloud API.
	ProviderOpenAI EmbeddingProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case ProviderHash, ProviderOllama, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI
}

// IsLocal returns true if this provider runs without network access.
func (p EmbeddingProvider) IsLocal() bool {
	return p == ProviderHash
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p EmbeddingProvider) Description() string {
	switch p {
	case ProviderHash:
		return "Feature hash (built-in, offline)"
	case ProviderOllama:
		return "Ollama (local)"
	case ProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// AllEmbeddingProviders returns all available providers.
func AllEmbeddingProviders() []EmbeddingProvider {
	return []EmbeddingProvider{
		ProviderHash,
		ProviderOllama,
		ProviderOpenAI,
	}
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Strategy is the default retrieval strategy.
	Strategy RetrievalStrategy

	// TopK is the default ranked pool size.
	TopK int

	// PageSize is the default page size.
	PageSize int
}

// LexicalSettings holds keyword ranking parameters.
type LexicalSettings struct {
	// K1 is the BM25 term frequency saturation parameter.
	K1 float64

	// B is the BM25 length normalisation parameter.
	B float64
}

// FusionSettings holds rank fusion parameters.
type FusionSettings struct {
	// K is the reciprocal rank fusion constant.
	K int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider EmbeddingProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions is the vector size the provider produces.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is usable.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// RecommendationSettings holds suggestion generation configuration.
type RecommendationSettings struct {
	// HistoryWindow is how many recent searches feed the snapshot.
	HistoryWindow int

	// SuggestionCount is the default number of suggestions returned.
	SuggestionCount int
}

// ServerSettings holds the HTTP front door configuration.
type ServerSettings struct {
	// HTTPPort is the port the HTTP API listens on.
	HTTPPort int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Search holds search behaviour settings.
	Search SearchSettings

	// Lexical holds keyword ranking parameters.
	Lexical LexicalSettings

	// Fusion holds rank fusion parameters.
	Fusion FusionSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Recommendation holds suggestion settings.
	Recommendation RecommendationSettings

	// Server holds HTTP server settings.
	Server ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults. The
// feature-hash embedding provider keeps hybrid search working with no
// external services; users can switch to Ollama or OpenAI later.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Strategy: StrategyHybrid,
			TopK:     50,
			PageSize: 20,
		},
		Lexical: LexicalSettings{
			K1: 1.5,
			B:  0.75,
		},
		Fusion: FusionSettings{
			K: 60,
		},
		Embedding: EmbeddingSettings{
			Provider:   ProviderHash,
			Model:      "feature-hash-v1",
			Dimensions: 384,
		},
		Recommendation: RecommendationSettings{
			HistoryWindow:   BehaviorWindow,
			SuggestionCount: 4,
		},
		Server: ServerSettings{
			HTTPPort: 8080,
		},
	}
}

// DefaultEmbeddingModels returns default models for each provider.
func DefaultEmbeddingModels() map[EmbeddingProvider]string {
	return map[EmbeddingProvider]string{
		ProviderHash:   "feature-hash-v1",
		ProviderOllama: "nomic-embed-text",
		ProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Built-in
		"feature-hash-v1": 384,
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
