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

package tablegroup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdnprobe/coloring/coloring/tablegroup"
)

func TestNew(t *testing.T) {
	r := tablegroup.New(nil, nil)
	assert.Equal(t, map[string]uint8{"base": 0}, r.Map())
	assert.Equal(t, []string{"base"}, r.Allowed())

	r = tablegroup.New([]string{"base", "epl"}, map[string]uint8{"epl": 3})
	assert.Equal(t, map[string]uint8{"base": 0, "epl": 3}, r.Map())
}

func TestOffer(t *testing.T) {
	testCases := map[string]struct {
		Allowed []string
		Offer   map[string]uint8
		Changed bool
		ErrIs   error
		Want    map[string]uint8
	}{
		"change": {
			Offer:   map[string]uint8{"base": 2},
			Changed: true,
			Want:    map[string]uint8{"base": 2},
		},
		"same": {
			Offer: map[string]uint8{"base": 0},
			Want:  map[string]uint8{"base": 0},
		},
		"not allowed": {
			Offer: map[string]uint8{"base": 1, "evpl": 4},
			ErrIs: tablegroup.ErrGroupNotAllowed,
			Want:  map[string]uint8{"base": 0},
		},
		"merge keeps other groups": {
			Allowed: []string{"base", "epl"},
			Offer:   map[string]uint8{"epl": 5},
			Changed: true,
			Want:    map[string]uint8{"base": 0, "epl": 5},
		},
		"empty": {
			Offer: map[string]uint8{},
			Want:  map[string]uint8{"base": 0},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			r := tablegroup.New(tc.Allowed, nil)
			changed, err := r.Offer(tc.Offer)
			if tc.ErrIs != nil {
				assert.ErrorIs(t, err, tc.ErrIs)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.Changed, changed)
			assert.Equal(t, tc.Want, r.Map())
		})
	}
}

func TestLookup(t *testing.T) {
	r := tablegroup.New(nil, map[string]uint8{"base": 4})
	tbl, ok := r.Lookup("base")
	assert.True(t, ok)
	assert.Equal(t, uint8(4), tbl)
	_, ok = r.Lookup("epl")
	assert.False(t, ok)
}
