// Copyright 2020 Anapaya Systems
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

// Package launcher includes the harness shared by the service binaries. It
// parses the command line, loads the TOML configuration, sets up logging
// and then passes control to the application's Main function.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
	"github.com/sdnprobe/coloring/private/app"
	"github.com/sdnprobe/coloring/private/app/command"
	libconfig "github.com/sdnprobe/coloring/private/config"
)

// Configuration keys used by the launcher.
const (
	cfgConfigFile                = "config"
	cfgLogConsoleLevel           = "log.console.level"
	cfgLogConsoleFormat          = "log.console.format"
	cfgLogConsoleStacktraceLevel = "log.console.stacktrace_level"
	cfgLogConsoleDisableCaller   = "log.console.disable_caller"
	cfgGeneralID                 = "general.id"
)

// Application models a service binary.
type Application struct {
	// TOMLConfig holds the Go data structure for the application-specific
	// TOML configuration. It is loaded from the --config file, initialized
	// with defaults and validated before Main is called.
	TOMLConfig libconfig.Config

	// ShortName is the short name of the application. If empty, the
	// executable name is used.
	ShortName string

	// Main is the custom logic of the application. If nil, no custom logic is
	// executed (and only the setup/teardown harness runs). If Main returns an
	// error, Run exits with a non-zero exit code.
	Main func(ctx context.Context) error

	// ErrorWriter specifies where error output should be printed. If nil,
	// os.Stderr is used.
	ErrorWriter io.Writer

	config *viper.Viper
}

// Run sets up the common harness and then passes control to the Main
// function (if one exists). It exits the process on a fatal error.
func (a *Application) Run() {
	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintf(a.errorWriter(), "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func (a *Application) run(args []string) error {
	executable := filepath.Base(os.Args[0])
	shortName := a.ShortName
	if shortName == "" {
		shortName = executable
	}

	cmd := a.newCommand(executable, shortName)
	cmd.SetArgs(args)
	ctx, cancel := app.WithSignal(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return cmd.ExecuteContext(ctx)
}

func (a *Application) newCommand(executable, shortName string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           executable + " --config <config.toml>",
		Short:         shortName,
		Example:       fmt.Sprintf("  %[1]s --config %[1]s.toml", executable),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.executeCommand(cmd.Context(), shortName)
		},
	}
	cmd.AddCommand(
		command.NewSample(cmd, a.TOMLConfig),
		command.NewVersion(cmd),
		command.NewGendocs(cmd),
	)
	cmd.Flags().String(cfgConfigFile, "", "Configuration file (required)")
	if err := cmd.MarkFlagRequired(cfgConfigFile); err != nil {
		panic(err)
	}

	a.config = viper.New()
	a.config.SetDefault(cfgLogConsoleLevel, log.DefaultConsoleLevel)
	a.config.SetDefault(cfgLogConsoleStacktraceLevel, log.DefaultStacktraceLevel)
	a.config.SetDefault(cfgGeneralID, executable)
	// The config file location is only known once the command line flags are
	// parsed; binding the flag makes it visible to the viper store.
	if err := a.config.BindPFlag(cfgConfigFile, cmd.Flags().Lookup(cfgConfigFile)); err != nil {
		panic(err)
	}
	return cmd
}

func (a *Application) executeCommand(ctx context.Context, shortName string) error {
	os.Setenv("TZ", "UTC")
	file := a.config.GetString(cfgConfigFile)

	// The launcher settings come from the same file as the application
	// config.
	a.config.SetConfigType("toml")
	a.config.SetConfigFile(file)
	if err := a.config.ReadInConfig(); err != nil {
		return serrors.Wrap("loading generic server config from file", err, "file", file)
	}
	if err := libconfig.LoadFile(file, a.TOMLConfig); err != nil {
		return err
	}
	a.TOMLConfig.InitDefaults()

	logEntriesTotal := metrics.NewPromCounter(prom.NewCounterVec("", "log_emitted_entries_total",
		"Total number of log entries emitted.", []string{"level"}))
	opt := log.WithEntriesCounter(log.EntriesCounter{
		Debug: logEntriesTotal.With("level", "debug"),
		Info:  logEntriesTotal.With("level", "info"),
		Error: logEntriesTotal.With("level", "error"),
	})
	if err := log.Setup(a.logging(), opt); err != nil {
		return serrors.Wrap("initialize logging", err)
	}
	defer log.Flush()
	defer log.HandlePanic()

	id := a.config.GetString(cfgGeneralID)
	log.Info("=====================> Service started", "service", shortName, "id", id)
	defer log.Info("=====================> Service stopped", "service", shortName, "id", id)

	exportBuildInfo()
	prom.ExportElementID(id)
	if err := a.TOMLConfig.Validate(); err != nil {
		return serrors.Wrap("validate config", err)
	}
	if a.Main == nil {
		return nil
	}
	return a.Main(ctx)
}

func (a *Application) logging() log.Config {
	return log.Config{
		Console: log.ConsoleConfig{
			Level:           a.config.GetString(cfgLogConsoleLevel),
			Format:          a.config.GetString(cfgLogConsoleFormat),
			StacktraceLevel: a.config.GetString(cfgLogConsoleStacktraceLevel),
			DisableCaller:   a.config.GetBool(cfgLogConsoleDisableCaller),
		},
	}
}

func (a *Application) errorWriter() io.Writer {
	if a.ErrorWriter != nil {
		return a.ErrorWriter
	}
	return os.Stderr
}

func exportBuildInfo() {
	version := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		version = info.Main.Version
	}
	prom.NewGaugeVec("", "build_info", "Build information of the running binary.",
		[]string{"version", "go_version"}).WithLabelValues(version, runtime.Version()).Set(1)
}
