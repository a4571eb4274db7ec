package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

func TestCreateService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantNil     bool
		wantErr     bool
		errContains string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.EmbeddingSettings{},
			wantNil:  true,
		},
		{
			name: "hash provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider:   domain.ProviderHash,
				Model:      "feature-hash-v1",
				Dimensions: 384,
			},
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.ProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.ProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "openai without key returns nil (not configured)",
			settings: &domain.EmbeddingSettings{
				Provider: domain.ProviderOpenAI,
				Model:    "text-embedding-3-small",
			},
			wantNil: true,
		},
		{
			name: "unknown provider returns nil (not configured)",
			settings: &domain.EmbeddingSettings{
				Provider: "unknown",
				APIKey:   "test-key",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateService(tt.settings)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				require.NoError(t, err)
			}

			if tt.wantNil {
				assert.Nil(t, svc)
			} else {
				assert.NotNil(t, svc)
			}
			if svc != nil {
				svc.Close()
			}
		})
	}
}

// TestCreateService_HashDimensions tests that the hash provider picks
// up the configured vector size
func TestCreateService_HashDimensions(t *testing.T) {
	svc, err := CreateService(&domain.EmbeddingSettings{
		Provider:   domain.ProviderHash,
		Model:      "feature-hash-v1",
		Dimensions: 128,
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, 128, svc.Dimensions())
}

// TestCreateService_DimensionsFromModel tests that a known model name
// fills in dimensions when none are set explicitly
func TestCreateService_DimensionsFromModel(t *testing.T) {
	svc, err := CreateService(&domain.EmbeddingSettings{
		Provider: domain.ProviderOllama,
		BaseURL:  "http://localhost:11434",
		Model:    "all-minilm",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, 384, svc.Dimensions())
}

// TestCreateAndValidateService_Hash tests the full create-and-ping path
// with the offline provider
func TestCreateAndValidateService_Hash(t *testing.T) {
	svc, err := CreateAndValidateService(&domain.EmbeddingSettings{
		Provider:   domain.ProviderHash,
		Model:      "feature-hash-v1",
		Dimensions: 64,
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()
}

func TestCreateAndValidateService_Unconfigured(t *testing.T) {
	svc, err := CreateAndValidateService(nil)

	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestValidateConfig_Hash(t *testing.T) {
	err := ValidateConfig(&domain.EmbeddingSettings{
		Provider:   domain.ProviderHash,
		Model:      "feature-hash-v1",
		Dimensions: 64,
	})

	assert.NoError(t, err)
}

func TestValidateConfig_Unconfigured(t *testing.T) {
	assert.NoError(t, ValidateConfig(nil))
	assert.NoError(t, ValidateConfig(&domain.EmbeddingSettings{}))
}
