package flags

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/modular/internal/graph"
)

func AddMaxNodes(cmd *cobra.Command) {
	cmd.Flags().
		IntP(
			"max-nodes",
			"m",
			0,
			"Maximum nodes to keep, zero for no limit (config graph.max_nodes by default)",
		)
}

func AddResolveForward(cmd *cobra.Command) {
	cmd.Flags().
		Bool(
			"resolve-forward",
			false,
			"Resolve links to posts that appear later in the listing",
		)
}

// HandleGraphOptions applies --max-nodes and --resolve-forward on top of
// opts when they were given.
func HandleGraphOptions(cmd *cobra.Command, opts graph.Options) (graph.Options, error) {
	if cmd.Flags().Changed("max-nodes") {
		maxNodes, err := cmd.Flags().GetInt("max-nodes")
		if err != nil {
			return opts, errors.Wrap(err, "error retrieving max-nodes flag")
		}
		opts.MaxNodes = maxNodes
	}
	if cmd.Flags().Changed("resolve-forward") {
		forward, err := cmd.Flags().GetBool("resolve-forward")
		if err != nil {
			return opts, errors.Wrap(err, "error retrieving resolve-forward flag")
		}
		opts.ResolveForward = forward
	}
	return opts, nil
}
