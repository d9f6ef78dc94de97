// Copyright 2018 Anapaya Systems
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

package util

import (
	"encoding"
	"flag"
	"time"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

var (
	_ encoding.TextUnmarshaler = (*DurWrap)(nil)
	_ encoding.TextMarshaler   = DurWrap{}
	_ flag.Value               = (*DurWrap)(nil)
)

// DurWrap is a duration config value in the format of ParseDuration, e.g.
// "10s" or "7d".
type DurWrap struct {
	time.Duration
}

// InitDefault sets the duration to def if it is unset.
func (d *DurWrap) InitDefault(def time.Duration) {
	if d.Duration == 0 {
		d.Duration = def
	}
}

// CheckPositive returns an error naming key if the duration is not positive.
func (d DurWrap) CheckPositive(key string) error {
	if d.Duration <= 0 {
		return serrors.New(key+" must be positive", key, d)
	}
	return nil
}

func (d *DurWrap) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

// Set parses text. It implements flag.Value.
func (d *DurWrap) Set(text string) error {
	v, err := ParseDuration(text)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d DurWrap) MarshalText() (text []byte, err error) {
	return []byte(FmtDuration(d.Duration)), nil
}

func (d DurWrap) String() string {
	return FmtDuration(d.Duration)
}
