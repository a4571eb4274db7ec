package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/config/file"
	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/embedding"
	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/index"
	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/storage/sqlite"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
	"github.com/talentbase-labs/scout-cli/internal/core/services"
	"github.com/talentbase-labs/scout-cli/internal/logger"
)

// version is set via ldflags at build time.
var version = "dev"

// verboseMode is bound to the global --verbose flag.
var verboseMode bool

// Services consumed by the commands. Wired in Execute; a nil service
// means bootstrap did not run or failed, and commands guard for it.
var (
	searchService    driving.SearchService
	candidateService driving.CandidateService
	historyService   driving.HistoryService
	recommendService driving.RecommendService
	settingsService  driving.SettingsService
)

// Held for shutdown.
var (
	store    *sqlite.Store
	embedder driven.EmbeddingService
)

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Find the right people in your candidate corpus",
	Long: `Scout searches a candidate corpus with plain language.

Queries are interpreted for structured filters (role, remote, tools,
experience), then run through keyword and semantic retrieval whose
rankings are fused. Results come back ranked, explained and labelled.

Data lives under ~/.scout (override with SCOUT_DATA_DIR).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseMode)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "verbose output")
}

// Execute wires the application together and runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := initServices(ctx); err != nil {
		return fmt.Errorf("scout startup: %w", err)
	}
	defer shutdown()

	return rootCmd.ExecuteContext(ctx)
}

// initServices builds the adapters and services the commands use.
func initServices(ctx context.Context) error {
	dataDir := os.Getenv("SCOUT_DATA_DIR")

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService = services.NewSettingsService(configStore, embedding.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	// Environment wins over the stored key so .env files work.
	if key := os.Getenv("SCOUT_OPENAI_API_KEY"); key != "" {
		settings.Embedding.APIKey = key
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	embedder, err = embedding.CreateService(&settings.Embedding)
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}

	candidates := store.CandidateStore()
	history := store.HistoryStore()

	provider := index.NewProvider(candidates, embedder, settings.Lexical.K1, settings.Lexical.B)
	if err := provider.Refresh(ctx); err != nil {
		return fmt.Errorf("building indexes: %w", err)
	}

	searchService = services.NewSearchService(provider, embedder, history, *settings)
	candidateService = services.NewCandidateService(candidates, history, provider, embedder)
	historyService = services.NewHistoryService(history)
	recommendService = services.NewRecommendationService(history, candidates, *settings, nil)

	logger.Debug("Services initialised (db %s)", store.Path())
	return nil
}

func shutdown() {
	if embedder != nil {
		if err := embedder.Close(); err != nil {
			logger.Warn("Closing embedding service: %v", err)
		}
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("Closing storage: %v", err)
		}
	}
}
