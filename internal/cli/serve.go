package cli

import (
	"github.com/spf13/cobra"

	"github.com/strandlab/strandplot/internal/server"
	"github.com/strandlab/strandplot/pkg/cache"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	noCache   bool   // disable caching entirely
	redisAddr string // use Redis instead of the file cache
	redisDB   int
	mongoURI  string // use MongoDB instead of the file cache
	mongoDB   string
}

// serveCommand creates the serve command running the HTTP drawing API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP drawing API",
		Long: `Serve runs the strandplot HTTP API.

Endpoints:

  POST /api/v1/draw   render a structure (JSON body)
  GET  /healthz       health check

By default results are cached on disk. Use --redis or --mongo to share
the cache between instances, or --no-cache to disable it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.serverCache(&opts)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Addr:   opts.addr,
				Cache:  cc,
				Logger: c.Logger,
			})
			printInfo("Serving on %s", opts.addr)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address (e.g. localhost:6379)")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "strandplot", "MongoDB database name")

	return cmd
}

// serverCache picks the cache backend from the serve flags. Exactly one
// of Redis, MongoDB, or the default file cache is used.
func (c *CLI) serverCache(opts *serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		return cache.NewRedisCache(opts.redisAddr, "", opts.redisDB)
	case opts.mongoURI != "":
		return cache.NewMongoCache(opts.mongoURI, opts.mongoDB)
	default:
		return newCache(false)
	}
}
