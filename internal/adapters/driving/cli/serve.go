package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentbase-labs/scout-cli/internal/adapters/driving/httpapi"
	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/services"
	"github.com/talentbase-labs/scout-cli/internal/corpus"
	"github.com/talentbase-labs/scout-cli/internal/logger"
)

var (
	servePort   int
	serveWatch  bool
	serveCorpus string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the scout HTTP API server.

The API exposes search, candidates, history, suggestions and analytics
under /api, with a /healthz liveness probe. With --corpus the corpus is
loaded before serving; adding --watch reloads it whenever the file
changes on disk.

Examples:
  # Serve on the configured port
  scout serve

  # Load a corpus first and reload it on every change
  scout serve --corpus ./candidates.json --watch`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = configured port)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload the corpus when the file changes")
	serveCmd.Flags().StringVar(&serveCorpus, "corpus", "", "corpus file to load before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil || candidateService == nil ||
		historyService == nil || recommendService == nil {
		return errors.New("services not configured")
	}
	if serveWatch && serveCorpus == "" {
		return errors.New("--watch requires --corpus")
	}

	ctx := cmd.Context()

	if serveCorpus != "" {
		count, err := candidateService.LoadCorpus(ctx, serveCorpus)
		if err != nil {
			return fmt.Errorf("loading corpus: %w", err)
		}
		cmd.Printf("Loaded %d candidates from %s\n", count, serveCorpus)
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Search:     searchService,
		Candidates: candidateService,
		History:    historyService,
		Recommend:  recommendService,
	})
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		// No explicit port: start from the configured one and drift
		// to a nearby free port if it is taken.
		port = configuredHTTPPort()
		if free, err := services.FindAvailablePort(port, port+10); err == nil {
			port = free
		}
	}

	if serveWatch {
		if err := watchCorpus(ctx, cmd, serveCorpus); err != nil {
			return err
		}
	}

	addr := fmt.Sprintf(":%d", port)
	cmd.Printf("Scout API listening on http://localhost%s\n", addr)
	return server.ListenAndServe(ctx, addr)
}

func configuredHTTPPort() int {
	if settingsService == nil {
		return domain.DefaultAppSettings().Server.HTTPPort
	}
	settings, err := settingsService.Get()
	if err != nil {
		return domain.DefaultAppSettings().Server.HTTPPort
	}
	return settings.Server.HTTPPort
}

// watchCorpus reloads the corpus after every settled change to path.
// The watcher stops when ctx is cancelled.
func watchCorpus(ctx context.Context, cmd *cobra.Command, path string) error {
	watcher := corpus.NewWatcher(path, 0)
	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching corpus: %w", err)
	}
	cmd.Printf("Watching %s for changes\n", path)

	go func() {
		defer func() { _ = watcher.Close() }()
		for changed := range changes {
			count, err := candidateService.LoadCorpus(ctx, changed)
			if err != nil {
				logger.Warn("corpus reload failed: %v", err)
				continue
			}
			cmd.Printf("Corpus reloaded: %d candidates\n", count)
		}
	}()

	return nil
}
