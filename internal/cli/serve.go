package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/kinship/pkg/server"
	"github.com/matzehuels/kinship/pkg/source"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the family tree over HTTP.

With --watch a file dataset is reloaded whenever it changes on disk. A reload
that fails keeps serving the previous graph.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cfg, err := c.openRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("watch") {
				watch = cfg.Server.Watch
			}

			srv := server.New(runner, c.Logger)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return srv.ListenAndServe(ctx, addr) })

			if watch {
				if f, ok := runner.Source.(*source.File); ok {
					g.Go(func() error { return runner.Watch(ctx, f.Path, source.DefaultDebounce) })
				} else {
					c.Logger.Warn("--watch only applies to file datasets", "source", runner.Source.Name())
				}
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when the dataset file changes")
	return cmd
}
