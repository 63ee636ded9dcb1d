package flags

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func AddOutput(cmd *cobra.Command) {
	cmd.Flags().
		StringP(
			"output",
			"o",
			"",
			"Output file (config graph.output by default)",
		)
}

// HandleOutput returns the --output value, or fallback when unset.
func HandleOutput(cmd *cobra.Command, fallback string) (string, error) {
	return stringOr(cmd, "output", fallback)
}

func AddOutputDir(cmd *cobra.Command) {
	cmd.Flags().
		StringP(
			"output-dir",
			"d",
			"",
			"Directory to write into (config output_dir by default)",
		)
}

// HandleOutputDir returns the --output-dir value, or fallback when unset.
func HandleOutputDir(cmd *cobra.Command, fallback string) (string, error) {
	return stringOr(cmd, "output-dir", fallback)
}

func stringOr(cmd *cobra.Command, name, fallback string) (string, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", errors.Wrapf(err, "error retrieving %s flag", name)
	}
	return value, nil
}
