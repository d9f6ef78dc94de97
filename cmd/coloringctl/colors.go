// Copyright 2025 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/sdnprobe/coloring/coloring/showcolors"
	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

func newColors(pather CommandPather) *cobra.Command {
	var flags struct {
		api      string
		timeout  time.Duration
		format   string
		noColor  bool
		logLevel string
	}

	var cmd = &cobra.Command{
		Use:     "colors",
		Short:   "Display the colors of the tracked switches",
		Aliases: []string{"c"},
		Args:    cobra.NoArgs,
		Example: fmt.Sprintf(`  %[1]s colors
  %[1]s colors --api 10.0.0.1:31152 --format json
  %[1]s colors --api https://coloring.example.net --no-color`, pather.CommandPath()),
		Long: `'colors' queries a running coloring service and lists the color of every
switch it tracks, together with the match field the color is encoded in.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.logLevel != "" {
				if err := log.Setup(log.Config{
					Console: log.ConsoleConfig{Level: flags.logLevel, Format: "human"},
				}); err != nil {
					return serrors.Wrap("setting up logging", err)
				}
			}
			cmd.SilenceUsage = true

			ctx, cancel := context.WithTimeout(context.Background(), flags.timeout)
			defer cancel()
			res, err := showcolors.Run(ctx, showcolors.Config{
				API:    flags.api,
				Client: &http.Client{Timeout: flags.timeout},
			})
			if err != nil {
				return err
			}
			log.Debug("Fetched colors", "api", flags.api, "switches", len(res.Switches))

			switch flags.format {
			case "human":
				res.Human(cmd.OutOrStdout(), !flags.noColor)
			case "json":
				return res.JSON(cmd.OutOrStdout())
			case "yaml":
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(res)
			default:
				return serrors.New("output format not supported", "format", flags.format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.api, "api", "127.0.0.1:31152",
		"Address or base URL of the coloring API")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 5*time.Second, "Timeout")
	cmd.Flags().StringVar(&flags.format, "format", "human",
		"Specify the output format (human|json|yaml)")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&flags.logLevel, "log.level", "", "Console logging level")
	return cmd
}
