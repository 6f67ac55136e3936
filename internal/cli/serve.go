package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/astscope/internal/server"
	"github.com/matzehuels/astscope/pkg/cache"
	"github.com/matzehuels/astscope/pkg/pipeline"
	"github.com/matzehuels/astscope/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualization HTTP API",
		Long: `Serve the visualization HTTP API.

The API exposes the same pipeline as the CLI plus snapshot storage.
By default renders are cached on disk and snapshots live in memory;
point --redis at a Redis instance for shared caching and --mongo at a
MongoDB instance for durable snapshots.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the render cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for the snapshot store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable render caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI string, noCache bool) error {
	renderCache, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	snapshots, err := c.serveStore(ctx, mongoURI)
	if err != nil {
		return err
	}
	defer snapshots.Close(context.Background())

	runner := pipeline.NewRunner(renderCache, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   addr,
		Runner: runner,
		Store:  snapshots,
		Logger: c.Logger,
	})
	return srv.ListenAndServe(ctx)
}

// serveCache picks the render cache backend for the server.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return rc, nil
	}
	return newCache(false)
}

// serveStore picks the snapshot store backend for the server.
func (c *CLI) serveStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		printWarning("Using in-memory snapshot store; snapshots are lost on restart")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	c.Logger.Info("using mongodb snapshot store")
	return ms, nil
}
