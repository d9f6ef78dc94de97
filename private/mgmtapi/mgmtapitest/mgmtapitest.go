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

// Package mgmtapitest contains helpers to test the management API config.
package mgmtapitest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdnprobe/coloring/private/mgmtapi"
)

// InitConfig sets values that the sample must overwrite.
func InitConfig(cfg *mgmtapi.Config) {
	cfg.Addr = "invalid"
}

// CheckConfig checks that the sample values were decoded.
func CheckConfig(t *testing.T, cfg *mgmtapi.Config) {
	t.Helper()
	assert.Equal(t, "127.0.0.1:31152", cfg.Addr)
	assert.NoError(t, cfg.Validate())
}
