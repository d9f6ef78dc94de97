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

// Package mgmtapi contains the pieces shared by management APIs: the
// listener configuration and problem responses.
package mgmtapi

import (
	"io"
	"net"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
	"github.com/sdnprobe/coloring/private/config"
)

var _ config.Config = (*Config)(nil)

// Config is the configuration of the management API.
type Config struct {
	// Addr is the listen address. If empty, the API is disabled.
	Addr string `toml:"addr,omitempty"`
}

// InitDefaults is a no-op. The API is disabled by default.
func (cfg *Config) InitDefaults() {}

// Validate checks the listen address.
func (cfg *Config) Validate() error {
	if cfg.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return serrors.Wrap("invalid api address", err, "addr", cfg.Addr)
	}
	return nil
}

// Sample writes a config sample to the writer.
func (cfg *Config) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, apiSample)
}

// ConfigName is the key in the toml file.
func (cfg *Config) ConfigName() string {
	return "api"
}

const apiSample = `
# The address to expose the API on (host:port or ip:port or :port).
# The API can be found under /api/v1. If not set, the API is not exposed.
# (default "")
addr = "127.0.0.1:31152"
`
