package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/cache"
	"github.com/matzehuels/treelayout/pkg/config"
	"github.com/matzehuels/treelayout/pkg/server"
	"github.com/matzehuels/treelayout/pkg/storage"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Layouts are stored in memory unless [storage] selects MongoDB, and results
are cached according to [cache]. The server stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), cfg, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config, addr string) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	// Server entries live beside CLI entries when both share a Redis cache.
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "server:")

	store, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close(context.Background())

	logger.Info("starting server",
		"addr", addr,
		"cache", cfg.Cache.Backend,
		"storage", cfg.Storage.Backend)

	srv := server.New(runner, store,
		server.WithLogger(logger),
		server.WithDefaults(cfg.PipelineOptions()))
	return srv.ListenAndServe(ctx, addr)
}

// newStore opens the configured document store.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Backend == config.StorageMongo {
		return storage.NewMongoStore(ctx, storage.MongoConfig{
			URI:        cfg.Storage.MongoURI,
			Database:   cfg.Storage.Database,
			Collection: cfg.Storage.Collection,
		})
	}
	return storage.NewMemoryStore(), nil
}
