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

package log

import (
	"io"

	"github.com/sdnprobe/coloring/private/config"
)

const consoleSample = `
# Console logging level (debug|info|error) (default info)
level = "info"
# Console logging format (human|json). If unset, human is used when stderr is
# a terminal and json otherwise.
format = "human"
# Level from which stack traces are included (debug|info|error|none)
# (default none)
stacktrace_level = "none"
# Do not annotate entries with the caller. (default false)
disable_caller = false
`

// Sample writes the log config sample to dst.
func (c *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteSample(dst, path, ctx, &c.Console)
}

// ConfigName returns the name of the log config block.
func (c *Config) ConfigName() string {
	return "log"
}

// Sample writes the console config sample to dst.
func (c *ConsoleConfig) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, consoleSample)
}

// ConfigName returns the name of the console config block.
func (c *ConsoleConfig) ConfigName() string {
	return "console"
}
