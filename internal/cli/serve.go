package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/internal/server"
	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the layout and render pipeline over HTTP:

  GET  /healthz      liveness probe
  GET  /version      build information
  POST /v1/layouts   tree document in, layout document out
  POST /v1/render    tree or layout document in, artifact out

Use the redis or mongo cache backend to share results between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			cc, err := c.newCache(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, server.KeyPrefix), c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Runner:       runner,
				Logger:       c.Logger,
				Defaults:     cfg.Layout,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
			})
			return srv.ListenAndServe(ctx, server.ListenOptions{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the cache")

	return cmd
}
