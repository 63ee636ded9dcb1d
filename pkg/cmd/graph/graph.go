package graph

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	sitegraph "github.com/Paintersrp/modular/internal/graph"
	cmdutil "github.com/Paintersrp/modular/pkg/cmd"
	"github.com/Paintersrp/modular/pkg/flags"
)

func NewCmdGraph(load cmdutil.StateLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate the post link graph",
		Long: heredoc.Doc(`
			Fetches every published post and writes the link graph consumed by
			the site's graph view. Links resolve only to posts earlier in the
			listing unless --resolve-forward is set. The best connected
			--max-nodes posts are kept; zero keeps everything.
		`),
		Example: heredoc.Doc(`
			modular graph
			modular graph --max-nodes 50 --output dist/graph.json
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}

			opts, err := flags.HandleGraphOptions(cmd, s.GraphOptions())
			if err != nil {
				return err
			}
			output, err := flags.HandleOutput(cmd, s.Config.Graph.Output)
			if err != nil {
				return err
			}

			doc, err := cmdutil.GenerateGraph(cmd.Context(), s, opts)
			if err != nil {
				return err
			}
			if err := sitegraph.Write(doc, output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cmdutil.PrintWritten(out, "graph", output)
			cmdutil.PrintGraphSummary(out, doc)
			return nil
		},
	}

	flags.AddMaxNodes(cmd)
	flags.AddResolveForward(cmd)
	flags.AddOutput(cmd)

	return cmd
}
