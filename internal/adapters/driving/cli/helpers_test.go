package cli

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/embedding/hash"
	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/index"
	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/storage/memory"
	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/services"
)

// testCandidates is a small corpus with enough variety for every
// command to find something.
func testCandidates() []domain.Candidate {
	return []domain.Candidate{
		{
			ID:              "cand-1",
			Name:            "Maria Gomez",
			Role:            "Product Manager",
			Industry:        "SaaS",
			CompanyName:     "Acme",
			CompanySize:     "50-200",
			Remote:          true,
			TeamSize:        4,
			ExperienceYears: 8,
			Tools:           []string{"Jira", "Figma"},
			Skills:          []string{"Roadmapping", "User Research"},
			Description:     "Product manager with a data background and a love of discovery work.",
		},
		{
			ID:              "cand-2",
			Name:            "Jon Snow",
			Role:            "Engineering Manager",
			Industry:        "Fintech",
			CompanyName:     "Northwall",
			CompanySize:     "200-500",
			Remote:          false,
			TeamSize:        9,
			ExperienceYears: 12,
			Tools:           []string{"Jira", "GitHub"},
			Skills:          []string{"Hiring", "Platform Engineering"},
			Description:     "Engineering manager who grew a platform team from three to nine.",
		},
		{
			ID:              "cand-3",
			Name:            "Priya Patel",
			Role:            "UX Designer",
			Industry:        "Healthcare",
			CompanyName:     "Carelight",
			CompanySize:     "10-50",
			Remote:          true,
			TeamSize:        0,
			ExperienceYears: 5,
			Tools:           []string{"Figma", "Miro"},
			Skills:          []string{"Prototyping", "Accessibility"},
			Description:     "Designer focused on accessible healthcare products.",
		},
	}
}

// setupTestServices wires the commands to in-memory services seeded
// with a small corpus. The returned cleanup restores whatever was
// wired before.
func setupTestServices() func() {
	oldSearch := searchService
	oldCandidates := candidateService
	oldHistory := historyService
	oldRecommend := recommendService
	oldSettings := settingsService

	candidates := memory.NewCandidateStore()
	history := memory.NewHistoryStore()
	config := memory.NewConfigStore()

	settings := domain.DefaultAppSettings()
	embedder := hash.NewEmbeddingService(settings.Embedding.Dimensions)

	ctx := context.Background()
	for _, c := range testCandidates() {
		if vec, err := embedder.Embed(ctx, c.Description); err == nil {
			c.Embedding = vec
		}
		_ = candidates.Save(ctx, &c)
	}

	provider := index.NewProvider(candidates, embedder, settings.Lexical.K1, settings.Lexical.B)
	_ = provider.Refresh(ctx)

	settingsService = services.NewSettingsService(config, nil)
	searchService = services.NewSearchService(provider, embedder, history, settings)
	candidateService = services.NewCandidateService(candidates, history, provider, embedder)
	historyService = services.NewHistoryService(history)
	recommendService = services.NewRecommendationService(history, candidates, settings, nil)

	return func() {
		searchService = oldSearch
		candidateService = oldCandidates
		historyService = oldHistory
		recommendService = oldRecommend
		settingsService = oldSettings
	}
}
