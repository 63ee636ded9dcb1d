/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/modular/internal/config"
	"github.com/Paintersrp/modular/internal/constants"
	"github.com/Paintersrp/modular/internal/logger"
	"github.com/Paintersrp/modular/internal/state"
	cmdutil "github.com/Paintersrp/modular/pkg/cmd"
	"github.com/Paintersrp/modular/pkg/cmd/build"
	"github.com/Paintersrp/modular/pkg/cmd/feeds"
	"github.com/Paintersrp/modular/pkg/cmd/graph"
	"github.com/Paintersrp/modular/pkg/cmd/initialize"
	"github.com/Paintersrp/modular/pkg/cmd/serve"
)

// Flags shared by every command.
type Flags struct {
	ConfigPath string
	JSONLogs   bool
	Verbose    bool
}

func NewCmdRoot() *cobra.Command {
	flags := &Flags{}

	var loaded *state.State
	load := cmdutil.StateLoader(func() (*state.State, error) {
		if loaded != nil {
			return loaded, nil
		}
		s, err := state.NewState(flags.ConfigPath)
		if err != nil {
			return nil, err
		}
		loaded = s
		return s, nil
	})

	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Generate site artifacts from a headless CMS.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			Fetches posts, pages, projects and docs from a Strapi CMS and produces
			the static artifacts a site build needs: the post link graph, an RSS
			channel, an Atom feed and a sitemap.

			  modular init --strapi-url https://cms.example.com
			  modular graph --max-nodes 50
			  modular build
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env may carry MODULAR_ENV, which decides the log level.
			if err := config.LoadEnv(); err != nil {
				return err
			}
			return logger.Initialize(logger.Options{JSON: flags.JSONLogs, Verbose: flags.Verbose})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if loaded != nil {
				loaded.Close()
				return
			}
			logger.Cleanup()
		},
	}

	cmd.PersistentFlags().
		StringVarP(
			&flags.ConfigPath,
			"config",
			"c",
			"",
			"Config file to use (default ~/.modular/config.yaml).",
		)
	cmd.PersistentFlags().BoolVar(&flags.JSONLogs, "json-logs", false, "Emit logs as JSON.")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging.")

	cmd.AddCommand(
		initialize.NewCmdInit(func() string { return flags.ConfigPath }),
		graph.NewCmdGraph(load),
		feeds.NewCmdFeeds(load),
		build.NewCmdBuild(load),
		serve.NewCmdServe(load),
	)

	return cmd
}
