package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starroute/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   cacheFlags
		addr    string
		catPath string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the route HTTP API",
		Long: `Serve route computation over HTTP until interrupted.

Endpoints:
  GET  /healthz      build information
  GET  /v1/catalog   the course catalog
  POST /v1/routes    {"config": {...}, "options": {...}} -> route JSON
  POST /v1/graph     {"config": {...}, "selected": [...]} -> DOT or SVG`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := loadCatalog(catPath)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			srv := server.New(runner, cat,
				server.WithLogger(loggerFromContext(ctx)),
				server.WithRequestTimeout(timeout))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&catPath, "catalog", "", "course catalog YAML (default: built-in)")
	cmd.Flags().DurationVar(&timeout, "request-timeout", server.DefaultRequestTimeout, "maximum time per request")
	flags.register(cmd)

	return cmd
}
