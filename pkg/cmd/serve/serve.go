package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/modular/internal/server"
	cmdutil "github.com/Paintersrp/modular/pkg/cmd"
)

const defaultAddr = "127.0.0.1:4321"

func NewCmdServe(load cmdutil.StateLoader) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated documents live from the CMS",
		Long: heredoc.Doc(`
			Starts a preview server rendering /rss.xml, /feed.xml, /sitemap.xml
			and /graph/graph-data.json on every request. Stops on interrupt.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(s.Client, server.Config{
				Site:    s.Site(),
				Graph:   s.GraphOptions(),
				Collect: s.CollectOptions(),
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", defaultAddr, "Address to listen on.")

	return cmd
}
