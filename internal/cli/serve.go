package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfgds/rfgds/internal/server"
	"github.com/rfgds/rfgds/pkg/cache"
	"github.com/rfgds/rfgds/pkg/catalog"
	"github.com/rfgds/rfgds/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // redis cache backend, empty for file cache
	redisDB   int    // redis database number
	mongoURI  string // mongo catalog backend, empty for in-memory
	mongoDB   string // mongo database name
	noCache   bool   // disable caching entirely
}

// serveCommand creates the serve command: the HTTP conversion service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion service",
		Long: `Run the HTTP conversion service.

Designs posted to /api/v1/convert run through the same pipeline as the
convert command; results are stored in a catalog for later retrieval.
By default the service uses the local file cache and an in-memory
catalog; point it at Redis and MongoDB for shared deployments.

Examples:
  rfgds serve
  rfgds serve --addr :9000 --redis localhost:6379 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "mongodb connection string for the design catalog")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", catalog.DefaultDatabase, "mongodb database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	cch, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	var store catalog.Store
	if opts.mongoURI != "" {
		mongoStore, err := catalog.NewMongoStore(ctx, catalog.MongoConfig{
			URI:      opts.mongoURI,
			Database: opts.mongoDB,
		})
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		defer mongoStore.Close(ctx)
		store = mongoStore
		c.Logger.Info("using mongo catalog", "db", opts.mongoDB)
	} else {
		store = catalog.NewMemoryStore()
		c.Logger.Warn("using in-memory catalog; stored designs are lost on restart")
	}

	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, store, c.Logger)
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks the cache backend for the service: Redis when
// configured, the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		cch, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: opts.redisAddr,
			DB:   opts.redisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", opts.redisAddr)
		return cch, nil
	}
	return newCache(false)
}
