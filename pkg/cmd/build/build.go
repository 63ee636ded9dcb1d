package build

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	sitegraph "github.com/Paintersrp/modular/internal/graph"
	"github.com/Paintersrp/modular/internal/logger"
	"github.com/Paintersrp/modular/internal/publish"
	cmdutil "github.com/Paintersrp/modular/pkg/cmd"
)

func NewCmdBuild(load cmdutil.StateLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate every artifact and publish it",
		Long: heredoc.Doc(`
			Runs graph and feeds in one pass and hands the results to the
			configured publish target. The output directory is always written;
			publish.target s3 or minio additionally uploads each artifact.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			log := logger.Named("build")

			doc, err := cmdutil.GenerateGraph(ctx, s, s.GraphOptions())
			if err != nil {
				return err
			}
			graphBody, err := sitegraph.Encode(doc)
			if err != nil {
				return err
			}

			artifacts, err := cmdutil.RenderFeeds(ctx, s)
			if err != nil {
				return err
			}

			publisher, err := publish.New(ctx, s.PublishConfig(), s.Config.OutputDir)
			if err != nil {
				return err
			}

			graphKey := publish.Key(s.Config.OutputDir, s.Config.Graph.Output, "")
			if graphKey == "" {
				// Configured outside the output directory: keep that copy too.
				if err := sitegraph.Write(doc, s.Config.Graph.Output); err != nil {
					return err
				}
				graphKey = cmdutil.GraphArtifactName
			}
			if err := publisher.Publish(ctx, graphKey, graphBody, "application/json"); err != nil {
				return err
			}
			for _, a := range artifacts {
				if err := publisher.Publish(ctx, a.Name, a.Body, a.ContentType); err != nil {
					return err
				}
			}
			log.Infow("published artifacts",
				logger.FieldCount, len(artifacts)+1,
				"target", s.Config.Publish.Target,
			)

			cmdutil.PrintGraphSummary(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	return cmd
}
