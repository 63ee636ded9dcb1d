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
package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/Paintersrp/modular/internal/config"
	"github.com/Paintersrp/modular/pkg/cmd/root"
)

func Execute() {
	rootCmd := root.NewCmdRoot()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}

		var initErr *config.ConfigInitError
		if errors.As(err, &initErr) {
			fmt.Fprintln(os.Stderr, "Run `modular init` to create or fix the config file.")
		}
		os.Exit(1)
	}
}
