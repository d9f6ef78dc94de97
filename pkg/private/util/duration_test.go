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

package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sdnprobe/coloring/pkg/private/util"
)

func TestDuration(t *testing.T) {
	testCases := map[string]struct {
		Input     string
		Duration  time.Duration
		Formatted string
		Assertion assert.ErrorAssertionFunc
	}{
		"seconds": {
			Input:     "10s",
			Duration:  10 * time.Second,
			Formatted: "10s",
			Assertion: assert.NoError,
		},
		"minutes": {
			Input:     "1m30s",
			Duration:  90 * time.Second,
			Formatted: "90s",
			Assertion: assert.NoError,
		},
		"days": {
			Input:     "2d",
			Duration:  48 * time.Hour,
			Formatted: "2d",
			Assertion: assert.NoError,
		},
		"garbage": {
			Input:     "ten",
			Assertion: assert.Error,
		},
		"bad days": {
			Input:     "xd",
			Assertion: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var d util.DurWrap
			err := d.UnmarshalText([]byte(tc.Input))
			tc.Assertion(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.Duration, d.Duration)
			text, err := d.MarshalText()
			assert.NoError(t, err)
			assert.Equal(t, tc.Formatted, string(text))
		})
	}
}

func TestDurWrapDefaults(t *testing.T) {
	var d util.DurWrap
	assert.Error(t, d.CheckPositive("interval"))
	d.InitDefault(5 * time.Second)
	assert.Equal(t, 5*time.Second, d.Duration)
	assert.NoError(t, d.CheckPositive("interval"))

	d.InitDefault(time.Minute)
	assert.Equal(t, 5*time.Second, d.Duration)

	d.Duration = -time.Second
	err := d.CheckPositive("interval")
	assert.ErrorContains(t, err, "interval must be positive")
}

func TestDurWrapSetError(t *testing.T) {
	d := util.DurWrap{Duration: time.Second}
	assert.ErrorContains(t, d.Set("ten"), "input=ten")
	assert.Equal(t, time.Second, d.Duration)
}
