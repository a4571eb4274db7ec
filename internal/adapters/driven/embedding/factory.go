package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/embedding/hash"
	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/embedding/ollama"
	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/embedding/openai"
	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for provider connectivity
// validation.
const pingTimeout = 5 * time.Second

// CreateService creates the embedding service selected by settings.
// Returns nil if no provider is configured.
func CreateService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.ProviderHash:
		return hash.NewEmbeddingService(settings.Dimensions), nil

	case domain.ProviderOllama:
		return createOllamaService(settings), nil

	case domain.ProviderOpenAI:
		return createOpenAIService(settings)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateAndValidateService creates an embedding service and validates
// connectivity. Returns the service if successful, or an error with
// guidance.
func CreateAndValidateService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'scout settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: provider unreachable (%w). Run 'scout settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// ValidateConfig validates an embedding configuration by creating a
// service and pinging it. Intended for settings commands that validate
// credentials on configuration.
func ValidateConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// createOllamaService creates an Ollama embedding service.
func createOllamaService(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	return ollama.NewEmbeddingService(ollama.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: resolveDimensions(settings),
	})
}

// createOpenAIService creates an OpenAI embedding service. Cloud calls
// go through the rate limiter so corpus loads stay under quota.
func createOpenAIService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := openai.NewEmbeddingService(openai.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: resolveDimensions(settings),
	})
	if err != nil {
		return nil, err
	}
	return NewRateLimited(svc, DefaultRateLimit), nil
}

// resolveDimensions picks the explicit dimension override, falling back
// to the known size for the model. Zero lets the adapter use its own
// default.
func resolveDimensions(settings *domain.EmbeddingSettings) int {
	if settings.Dimensions > 0 {
		return settings.Dimensions
	}
	return domain.EmbeddingDimensions()[settings.Model]
}
