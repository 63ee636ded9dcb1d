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
package initialize

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/modular/internal/config"
	"github.com/Paintersrp/modular/internal/state"
	cmdutil "github.com/Paintersrp/modular/pkg/cmd"
)

type options struct {
	strapiURL string
	siteURL   string
	force     bool
}

func NewCmdInit(configPath func() string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i", "initialize"},
		Short:   "Write a default config file",
		Long: heredoc.Doc(`
			Writes a config file with every default filled in. Existing files are
			left alone unless --force is given.
		`),
		Example: "modular init --strapi-url https://cms.example.com --site-url https://example.com",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			if path == "" {
				home, err := state.GetHomeDir()
				if err != nil {
					return err
				}
				path = config.GetConfigPath(home)
			}
			return run(cmd, opts, path)
		},
	}

	cmd.Flags().StringVar(&opts.strapiURL, "strapi-url", "", "Base URL of the Strapi CMS.")
	cmd.Flags().StringVar(&opts.siteURL, "site-url", "", "Public URL of the site.")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config file.")

	return cmd
}

func run(cmd *cobra.Command, opts *options, path string) error {
	cfg := config.Default()
	cfg.Strapi.URL = opts.strapiURL
	cfg.Site.URL = opts.siteURL

	if opts.force {
		if err := cfg.Save(path); err != nil {
			return err
		}
		cmdutil.PrintWritten(cmd.OutOrStdout(), "config", path)
		return nil
	}

	created, err := config.EnsureConfigExists(path, cfg)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s (use --force to overwrite)\n", path)
		return nil
	}

	cmdutil.PrintWritten(cmd.OutOrStdout(), "config", path)
	return nil
}
