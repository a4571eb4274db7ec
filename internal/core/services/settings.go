package services

import (
	"fmt"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySearchStrategy     = "search.strategy"
	keySearchTopK         = "search.top_k"
	keySearchPageSize     = "search.page_size"
	keyLexicalK1          = "lexical.k1"
	keyLexicalB           = "lexical.b"
	keyFusionK            = "fusion.k"
	keyEmbedProvider      = "embedding.provider"
	keyEmbedModel         = "embedding.model"
	keyEmbedBaseURL       = "embedding.base_url"
	keyEmbedAPIKey        = "embedding.api_key"
	keyEmbedDims          = "embedding.dimensions"
	keyRecHistoryWindow   = "recommendation.history_window"
	keyRecSuggestionCount = "recommendation.suggestion_count"
	keyServerHTTPPort     = "server.http_port"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validator   driven.EmbeddingValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, validator driven.EmbeddingValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validator:   validator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			Strategy: s.getStrategy(defaults.Search.Strategy),
			TopK:     s.getInt(keySearchTopK, defaults.Search.TopK),
			PageSize: s.getInt(keySearchPageSize, defaults.Search.PageSize),
		},
		Lexical: domain.LexicalSettings{
			K1: s.getFloat(keyLexicalK1, defaults.Lexical.K1),
			B:  s.getFloat(keyLexicalB, defaults.Lexical.B),
		},
		Fusion: domain.FusionSettings{
			K: s.getInt(keyFusionK, defaults.Fusion.K),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:   s.getProvider(defaults.Embedding.Provider),
			Model:      s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:    s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:     s.configStore.GetString(keyEmbedAPIKey),
			Dimensions: s.getInt(keyEmbedDims, defaults.Embedding.Dimensions),
		},
		Recommendation: domain.RecommendationSettings{
			HistoryWindow:   s.getInt(keyRecHistoryWindow, defaults.Recommendation.HistoryWindow),
			SuggestionCount: s.getInt(keyRecSuggestionCount, defaults.Recommendation.SuggestionCount),
		},
		Server: domain.ServerSettings{
			HTTPPort: s.getInt(keyServerHTTPPort, defaults.Server.HTTPPort),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save search settings
	if err := s.configStore.Set(keySearchStrategy, settings.Search.Strategy.String()); err != nil {
		return fmt.Errorf("save search strategy: %w", err)
	}
	if err := s.configStore.Set(keySearchTopK, settings.Search.TopK); err != nil {
		return fmt.Errorf("save search top_k: %w", err)
	}
	if err := s.configStore.Set(keySearchPageSize, settings.Search.PageSize); err != nil {
		return fmt.Errorf("save search page_size: %w", err)
	}

	// Save ranking parameters
	if err := s.configStore.Set(keyLexicalK1, settings.Lexical.K1); err != nil {
		return fmt.Errorf("save lexical k1: %w", err)
	}
	if err := s.configStore.Set(keyLexicalB, settings.Lexical.B); err != nil {
		return fmt.Errorf("save lexical b: %w", err)
	}
	if err := s.configStore.Set(keyFusionK, settings.Fusion.K); err != nil {
		return fmt.Errorf("save fusion k: %w", err)
	}

	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyEmbedDims, settings.Embedding.Dimensions); err != nil {
		return fmt.Errorf("save embedding dimensions: %w", err)
	}

	// Save recommendation settings
	if err := s.configStore.Set(keyRecHistoryWindow, settings.Recommendation.HistoryWindow); err != nil {
		return fmt.Errorf("save recommendation history_window: %w", err)
	}
	if err := s.configStore.Set(keyRecSuggestionCount, settings.Recommendation.SuggestionCount); err != nil {
		return fmt.Errorf("save recommendation suggestion_count: %w", err)
	}

	// Save server settings
	if err := s.configStore.Set(keyServerHTTPPort, settings.Server.HTTPPort); err != nil {
		return fmt.Errorf("save server http_port: %w", err)
	}

	return nil
}

// SetStrategy updates the default retrieval strategy.
func (s *SettingsService) SetStrategy(strategy domain.RetrievalStrategy) error {
	if !strategy.IsValid() {
		return fmt.Errorf("invalid retrieval strategy: %s", strategy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Search.Strategy = strategy

	return s.Save(settings)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.EmbeddingProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		defaults := domain.DefaultEmbeddingModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.Embedding.Model = defaultModel
		}
	}

	// Ollama needs a base URL; the other providers do not
	if provider == domain.ProviderOllama {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.Embedding.BaseURL = ""
	}

	// Set API key
	settings.Embedding.APIKey = apiKey

	// Track the model's vector size so indexes are built to match
	dims := domain.EmbeddingDimensions()
	if d, ok := dims[settings.Embedding.Model]; ok {
		settings.Embedding.Dimensions = d
	}

	return s.Save(settings)
}

// Validate checks if current settings are valid for the configured
// strategy.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Search.Strategy.IsValid() {
		return fmt.Errorf("invalid retrieval strategy: %s", settings.Search.Strategy)
	}

	// Check embedding configuration if required
	if settings.Search.Strategy.RequiresEmbedding() {
		if !settings.Embedding.IsConfigured() {
			return fmt.Errorf(
				"strategy %q requires an embedding provider to be configured",
				settings.Search.Strategy.Description(),
			)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration
// by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.validator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.validator.ValidateEmbedding(&settings.Embedding)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStrategy(defaultVal domain.RetrievalStrategy) domain.RetrievalStrategy {
	val := s.configStore.GetString(keySearchStrategy)
	if val == "" {
		return defaultVal
	}
	strategy := domain.RetrievalStrategy(val)
	if !strategy.IsValid() {
		return defaultVal
	}
	return strategy
}

func (s *SettingsService) getProvider(defaultVal domain.EmbeddingProvider) domain.EmbeddingProvider {
	val := s.configStore.GetString(keyEmbedProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.EmbeddingProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
