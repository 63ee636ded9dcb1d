package feeds

import (
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/modular/internal/publish"
	cmdutil "github.com/Paintersrp/modular/pkg/cmd"
	"github.com/Paintersrp/modular/pkg/flags"
)

func NewCmdFeeds(load cmdutil.StateLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "feeds",
		Aliases: []string{"feed", "rss"},
		Short:   "Generate rss.xml, feed.xml and sitemap.xml",
		Long: heredoc.Doc(`
			Renders the RSS channel, the Atom feed and the sitemap into the
			output directory. Requires site.url to be set.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			outputDir, err := flags.HandleOutputDir(cmd, s.Config.OutputDir)
			if err != nil {
				return err
			}

			artifacts, err := cmdutil.RenderFeeds(cmd.Context(), s)
			if err != nil {
				return err
			}

			dir := publish.NewDir(outputDir)
			for _, a := range artifacts {
				if err := dir.Publish(cmd.Context(), a.Name, a.Body, a.ContentType); err != nil {
					return err
				}
				cmdutil.PrintWritten(cmd.OutOrStdout(), a.Name, filepath.Join(outputDir, a.Name))
			}
			return nil
		},
	}

	flags.AddOutputDir(cmd)

	return cmd
}
