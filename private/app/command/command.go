// Copyright 2021 Anapaya Systems
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

// Package command contains cobra subcommands shared by the service binaries.
package command

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/sdnprobe/coloring/private/config"
)

// Pather returns the command path of the parent command. Subcommands use it
// to render examples with the full invocation.
type Pather interface {
	CommandPath() string
}

// StringPather is a Pather that returns a fixed path.
type StringPather string

// CommandPath returns the fixed path.
func (s StringPather) CommandPath() string {
	return string(s)
}

// NewSample creates a command that prints a sample configuration built from
// the samplers.
func NewSample(pather Pather, samplers ...config.Sampler) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Display a sample configuration file",
		Example: fmt.Sprintf("  %[1]s sample > coloring.toml\n"+
			"  %[1]s sample --id coloring-2", pather.CommandPath()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.WriteSample(cmd.OutOrStdout(), nil, config.CtxMap{config.ID: id},
				samplers...)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "coloring-1", "Element ID used in the sample")
	return cmd
}

// NewVersion creates a command that prints the build information.
func NewVersion(pather Pather) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show the version and build information",
		Example: fmt.Sprintf("  %s version", pather.CommandPath()),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return WriteVersion(cmd.OutOrStdout())
		},
	}
}

// WriteVersion writes the module version and VCS settings to w.
func WriteVersion(w io.Writer) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		_, err := fmt.Fprintln(w, "no build information available")
		return err
	}
	if _, err := fmt.Fprintf(w, "Version:    %s\nGo version: %s\n",
		info.Main.Version, info.GoVersion); err != nil {
		return err
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.time", "vcs.modified":
			if _, err := fmt.Fprintf(w, "%-11s %s\n", s.Key+":", s.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
