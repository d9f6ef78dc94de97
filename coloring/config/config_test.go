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

package config_test

import (
	"bytes"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/coloring/config"
	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/log/testlog"
	"github.com/sdnprobe/coloring/pkg/private/util"
	apitest "github.com/sdnprobe/coloring/private/mgmtapi/mgmtapitest"
)

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg config.Config
	cfg.Sample(&sample, nil, nil)

	InitConfig(&cfg)
	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	CheckConfig(t, &cfg)
}

func InitConfig(cfg *config.Config) {
	cfg.General.ID = "invalid"
	cfg.Logging.Console.Level = "error"
	apitest.InitConfig(&cfg.API)
	cfg.Coloring.ColorField = color.NWTos
	cfg.Coloring.TableGroups = []string{"invalid"}
	cfg.Journal.Connection = "invalid"
}

func CheckConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	assert.Equal(t, "coloring-1", cfg.General.ID)
	assert.Equal(t, "info", cfg.Logging.Console.Level)
	apitest.CheckConfig(t, &cfg.API)
	assert.Empty(t, cfg.Metrics.Prometheus)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "/var/lib/coloring/coloring-1.journal.db", cfg.Journal.Connection)

	var def config.ColoringConfig
	def.InitDefaults()
	assert.Equal(t, def, cfg.Coloring)

	cfg.InitDefaults()
	assert.NoError(t, cfg.Validate())
}

func TestColoringDefaults(t *testing.T) {
	var cfg config.ColoringConfig
	cfg.InitDefaults()
	assert.Equal(t, color.DLSrc, cfg.ColorField)
	assert.Equal(t, 10*time.Second, cfg.ColoringInterval.Duration)
	assert.Equal(t, config.DefaultTopologyURL, cfg.TopologyURL)
	assert.Equal(t, config.DefaultFlowManagerURL, cfg.FlowManagerURL)
	assert.Equal(t, uint8(0xac), cfg.CookiePrefix)
	assert.Equal(t, []string{"base"}, cfg.TableGroups)
	assert.Equal(t, []string{"0x04"}, cfg.SupportedVersions)
	assert.Empty(t, cfg.AckURL)
	assert.NoError(t, cfg.Validate())

	t.Run("file source keeps url empty", func(t *testing.T) {
		cfg := config.ColoringConfig{TopologyFile: "topology.yml"}
		cfg.InitDefaults()
		assert.Empty(t, cfg.TopologyURL)
		assert.NoError(t, cfg.Validate())
	})
}

func TestColoringValidate(t *testing.T) {
	testCases := map[string]struct {
		Modify    func(cfg *config.ColoringConfig)
		Assertion assert.ErrorAssertionFunc
	}{
		"defaults": {
			Modify:    func(*config.ColoringConfig) {},
			Assertion: assert.NoError,
		},
		"empty color field": {
			Modify:    func(cfg *config.ColoringConfig) { cfg.ColorField = "" },
			Assertion: assert.Error,
		},
		"negative interval": {
			Modify: func(cfg *config.ColoringConfig) {
				cfg.ColoringInterval = util.DurWrap{Duration: -time.Second}
			},
			Assertion: assert.Error,
		},
		"no topology source": {
			Modify: func(cfg *config.ColoringConfig) {
				cfg.TopologyURL = ""
				cfg.TopologyFile = ""
			},
			Assertion: assert.Error,
		},
		"relative topology url": {
			Modify:    func(cfg *config.ColoringConfig) { cfg.TopologyURL = "topology/v3" },
			Assertion: assert.Error,
		},
		"flow url without placeholder": {
			Modify: func(cfg *config.ColoringConfig) {
				cfg.FlowManagerURL = "http://localhost:8181/api/kytos/flow_manager/v2/flows"
			},
			Assertion: assert.Error,
		},
		"flow url with two placeholders": {
			Modify: func(cfg *config.ColoringConfig) {
				cfg.FlowManagerURL = "http://%s/flows/%s"
			},
			Assertion: assert.Error,
		},
		"flow url with other verb": {
			Modify: func(cfg *config.ColoringConfig) {
				cfg.FlowManagerURL = "http://localhost/flows/%s/%d"
			},
			Assertion: assert.Error,
		},
		"no table groups": {
			Modify:    func(cfg *config.ColoringConfig) { cfg.TableGroups = nil },
			Assertion: assert.Error,
		},
		"empty table group": {
			Modify:    func(cfg *config.ColoringConfig) { cfg.TableGroups = []string{"base", ""} },
			Assertion: assert.Error,
		},
		"ack url": {
			Modify: func(cfg *config.ColoringConfig) {
				cfg.AckURL = "http://localhost:8181/api/kytos/coloring/v1/events"
			},
			Assertion: assert.NoError,
		},
		"zero request timeout": {
			Modify:    func(cfg *config.ColoringConfig) { cfg.RequestTimeout = util.DurWrap{} },
			Assertion: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var cfg config.ColoringConfig
			cfg.InitDefaults()
			tc.Modify(&cfg)
			tc.Assertion(t, cfg.Validate())
		})
	}
}

func TestColoringValidateUnknownField(t *testing.T) {
	rec := testlog.NewRecorder()
	prev := log.Root()
	log.SetRoot(rec)
	t.Cleanup(func() { log.SetRoot(prev) })

	var cfg config.ColoringConfig
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())
	assert.Empty(t, rec.Messages(log.InfoLevel))

	cfg.ColorField = color.Field("eth_type")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"Unknown color_field, colors are encoded as 8 bit numbers"},
		rec.Messages(log.InfoLevel))
}
