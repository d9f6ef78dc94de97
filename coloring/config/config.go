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

// Package config describes the configuration of the coloring service.
package config

import (
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/synchronizer"
	"github.com/sdnprobe/coloring/coloring/tablegroup"
	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
	"github.com/sdnprobe/coloring/pkg/private/util"
	"github.com/sdnprobe/coloring/private/config"
	"github.com/sdnprobe/coloring/private/env"
	api "github.com/sdnprobe/coloring/private/mgmtapi"
	"github.com/sdnprobe/coloring/private/storage"
)

const (
	// DefaultColoringInterval is the default period of the topology poll.
	DefaultColoringInterval = 10 * time.Second
	// DefaultTopologyURL is the default topology endpoint of the controller.
	DefaultTopologyURL = "http://localhost:8181/api/kytos/topology/v3/"
	// DefaultFlowManagerURL is the default flow endpoint of the controller.
	DefaultFlowManagerURL = "http://localhost:8181/api/kytos/flow_manager/v2/flows/%s"
	// DefaultRequestTimeout bounds every request to the controller.
	DefaultRequestTimeout = 10 * time.Second
)

var _ config.Config = (*Config)(nil)

// Config is the coloring service configuration.
type Config struct {
	General  env.General      `toml:"general,omitempty"`
	Logging  log.Config       `toml:"log,omitempty"`
	Metrics  env.Metrics      `toml:"metrics,omitempty"`
	API      api.Config       `toml:"api,omitempty"`
	Tracing  env.Tracing      `toml:"tracing,omitempty"`
	Coloring ColoringConfig   `toml:"coloring,omitempty"`
	Journal  storage.DBConfig `toml:"journal,omitempty"`
}

// InitDefaults initializes the default values for all parts of the config.
func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Tracing,
		&cfg.Coloring,
		&cfg.Journal,
	)
}

// Validate validates all parts of the config.
func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Coloring,
		&cfg.Journal,
	)
}

// Sample generates a sample config file for the coloring service.
func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, config.CtxMap{config.ID: idSample},
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Tracing,
		&cfg.Coloring,
		&cfg.Journal,
	)
}

var _ config.Config = (*ColoringConfig)(nil)

// ColoringConfig holds the settings of the coloring logic and its
// controller endpoints.
type ColoringConfig struct {
	// ColorField is the match field that carries the color.
	ColorField color.Field `toml:"color_field,omitempty"`
	// ColoringInterval is the period of the topology poll.
	ColoringInterval util.DurWrap `toml:"coloring_interval,omitempty"`
	// TopologyURL is the topology endpoint of the controller.
	TopologyURL string `toml:"topology_url,omitempty"`
	// TopologyFile is a YAML snapshot read instead of polling TopologyURL.
	TopologyFile string `toml:"topology_file,omitempty"`
	// FlowManagerURL is the flow endpoint; %s is replaced by the switch id.
	FlowManagerURL string `toml:"flow_manager_url,omitempty"`
	// CookiePrefix is the top byte of the flow cookies. 0 selects the default.
	CookiePrefix uint8 `toml:"cookie_prefix,omitempty"`
	// TableGroups are the table groups that may be offered.
	TableGroups []string `toml:"table_groups,omitempty"`
	// SupportedVersions are the OpenFlow versions flows are installed for.
	SupportedVersions []string `toml:"supported_versions,omitempty"`
	// AckURL receives the table-group acks. If empty, acks are only logged.
	AckURL string `toml:"ack_url,omitempty"`
	// RequestTimeout bounds every request to the controller.
	RequestTimeout util.DurWrap `toml:"request_timeout,omitempty"`
	// FailureTTL is how long failed flow requests are kept for inspection.
	FailureTTL util.DurWrap `toml:"failure_ttl,omitempty"`
}

// InitDefaults sets the unset fields to their defaults.
func (cfg *ColoringConfig) InitDefaults() {
	if cfg.ColorField == "" {
		cfg.ColorField = color.DLSrc
	}
	cfg.ColoringInterval.InitDefault(DefaultColoringInterval)
	if cfg.TopologyURL == "" && cfg.TopologyFile == "" {
		cfg.TopologyURL = DefaultTopologyURL
	}
	if cfg.FlowManagerURL == "" {
		cfg.FlowManagerURL = DefaultFlowManagerURL
	}
	if cfg.CookiePrefix == 0 {
		cfg.CookiePrefix = flow.DefaultCookiePrefix
	}
	if len(cfg.TableGroups) == 0 {
		cfg.TableGroups = append([]string(nil), tablegroup.DefaultGroups...)
	}
	if len(cfg.SupportedVersions) == 0 {
		cfg.SupportedVersions = append([]string(nil), synchronizer.DefaultSupportedVersions...)
	}
	cfg.RequestTimeout.InitDefault(DefaultRequestTimeout)
	cfg.FailureTTL.InitDefault(flow.DefaultFailureTTL)
}

// Validate checks that the settings are usable.
func (cfg *ColoringConfig) Validate() error {
	if cfg.ColorField == "" {
		return serrors.New("color_field must be set")
	}
	if !cfg.ColorField.Known() {
		log.Info("Unknown color_field, colors are encoded as 8 bit numbers",
			"color_field", cfg.ColorField)
	}
	if err := cfg.ColoringInterval.CheckPositive("coloring_interval"); err != nil {
		return err
	}
	if cfg.TopologyURL == "" && cfg.TopologyFile == "" {
		return serrors.New("one of topology_url and topology_file must be set")
	}
	if cfg.TopologyURL != "" {
		if _, err := url.ParseRequestURI(cfg.TopologyURL); err != nil {
			return serrors.Wrap("parsing topology_url", err, "url", cfg.TopologyURL)
		}
	}
	if n := strings.Count(cfg.FlowManagerURL, "%s"); n != 1 ||
		strings.Count(cfg.FlowManagerURL, "%") != 1 {
		return serrors.New("flow_manager_url must contain exactly one %s",
			"url", cfg.FlowManagerURL)
	}
	if len(cfg.TableGroups) == 0 {
		return serrors.New("at least one table group is required")
	}
	for _, g := range cfg.TableGroups {
		if g == "" {
			return serrors.New("table group names must not be empty")
		}
	}
	if cfg.AckURL != "" {
		if _, err := url.ParseRequestURI(cfg.AckURL); err != nil {
			return serrors.Wrap("parsing ack_url", err, "url", cfg.AckURL)
		}
	}
	if err := cfg.RequestTimeout.CheckPositive("request_timeout"); err != nil {
		return err
	}
	return nil
}

// Sample writes the coloring sample.
func (cfg *ColoringConfig) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, coloringSample)
}

// ConfigName is the toml key of the coloring configuration.
func (cfg *ColoringConfig) ConfigName() string {
	return "coloring"
}
