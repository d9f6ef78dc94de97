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

package registry_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/registry"
	"github.com/sdnprobe/coloring/pkg/metrics"
)

func descriptorFor(c uint64) flow.Descriptor {
	return flow.NewDescriptor(color.DLSrc, color.Encode(c, color.DLSrc), c, flow.BaseGroup, 0)
}

func newPair(t *testing.T) *registry.Registry {
	reg := registry.New(registry.Metrics{})
	reg.Do(func(tx *registry.Tx) {
		assert.True(t, tx.Upsert("00:01", 1))
		assert.True(t, tx.Upsert("00:02", 2))
		require.NoError(t, tx.AddNeighborEdge("00:01", "00:02"))
	})
	return reg
}

func TestUpsert(t *testing.T) {
	reg := registry.New(registry.Metrics{})
	reg.Do(func(tx *registry.Tx) {
		assert.True(t, tx.Upsert("00:01", 1))
		assert.False(t, tx.Upsert("00:01", 7))
		c, ok := tx.Color("00:01")
		require.True(t, ok)
		assert.Equal(t, uint64(1), c)
		assert.Equal(t, 1, tx.Len())
	})
}

func TestAddNeighborEdge(t *testing.T) {
	testCases := map[string]struct {
		A, B      string
		ErrIs     error
		Neighbors []string
	}{
		"symmetric": {
			A:         "00:01",
			B:         "00:02",
			Neighbors: []string{"00:02"},
		},
		"self edge": {
			A:     "00:01",
			B:     "00:01",
			ErrIs: registry.ErrSelfEdge,
		},
		"untracked endpoint": {
			A:     "00:01",
			B:     "00:09",
			ErrIs: registry.ErrNotFound,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			reg := registry.New(registry.Metrics{})
			reg.Do(func(tx *registry.Tx) {
				tx.Upsert("00:01", 1)
				tx.Upsert("00:02", 2)
				err := tx.AddNeighborEdge(tc.A, tc.B)
				if tc.ErrIs != nil {
					assert.ErrorIs(t, err, tc.ErrIs)
				} else {
					assert.NoError(t, err)
				}
			})
			sw, ok := reg.Get("00:01")
			require.True(t, ok)
			assert.Equal(t, tc.Neighbors, sw.Neighbors)
			if tc.ErrIs == nil {
				other, _ := reg.Get(tc.B)
				assert.Equal(t, []string{tc.A}, other.Neighbors)
			}
		})
	}
}

func TestRemoveNeighborEdge(t *testing.T) {
	reg := newPair(t)
	reg.Do(func(tx *registry.Tx) {
		tx.RemoveNeighborEdge("00:02", "00:01")
		tx.RemoveNeighborEdge("00:02", "00:09")
	})
	for _, id := range []string{"00:01", "00:02"} {
		sw, ok := reg.Get(id)
		require.True(t, ok)
		assert.Empty(t, sw.Neighbors)
	}
}

func TestRemove(t *testing.T) {
	t.Run("untracked", func(t *testing.T) {
		reg := registry.New(registry.Metrics{})
		reg.Do(func(tx *registry.Tx) {
			assert.ErrorIs(t, tx.Remove("00:01"), registry.ErrNotFound)
		})
	})
	t.Run("with neighbors and flows", func(t *testing.T) {
		reg := newPair(t)
		reg.Do(func(tx *registry.Tx) {
			require.NoError(t, tx.RecordFlow("00:01", "00:02", descriptorFor(2)))
			err := tx.Remove("00:01")
			assert.ErrorIs(t, err, registry.ErrNotEmpty)
			var notEmpty *registry.NotEmptyError
			require.True(t, errors.As(err, &notEmpty))
			assert.Equal(t, []string{"00:02"}, notEmpty.Neighbors)
			assert.Equal(t, []string{"00:02"}, notEmpty.Flows)
			assert.True(t, tx.Tracked("00:01"))
		})
		sw, ok := reg.Get("00:01")
		require.True(t, ok)
		assert.Len(t, sw.Flows, 1)
	})
	t.Run("empty", func(t *testing.T) {
		reg := registry.New(registry.Metrics{})
		reg.Do(func(tx *registry.Tx) {
			tx.Upsert("00:01", 1)
			require.NoError(t, tx.Remove("00:01"))
			assert.False(t, tx.Tracked("00:01"))
		})
	})
}

func TestFlows(t *testing.T) {
	reg := newPair(t)
	d := descriptorFor(2)
	reg.Do(func(tx *registry.Tx) {
		assert.ErrorIs(t, tx.RecordFlow("00:09", "00:02", d), registry.ErrNotFound)
		require.NoError(t, tx.RecordFlow("00:01", "00:02", d))
		assert.True(t, tx.HasFlow("00:01", "00:02"))
		assert.False(t, tx.HasFlow("00:02", "00:01"))

		_, err := tx.DropFlow("00:02", "00:01")
		assert.ErrorIs(t, err, registry.ErrNotFound)
		got, err := tx.DropFlow("00:01", "00:02")
		require.NoError(t, err)
		assert.Equal(t, d, got)
		assert.False(t, tx.HasFlow("00:01", "00:02"))
	})
}

func TestSnapshotIsolation(t *testing.T) {
	reg := newPair(t)
	reg.Do(func(tx *registry.Tx) {
		require.NoError(t, tx.RecordFlow("00:01", "00:02", descriptorFor(2)))
	})
	sw, _ := reg.Get("00:01")
	sw.Flows["00:02"].Match[color.DLSrc] = color.StringValue("mutated")
	sw.Neighbors[0] = "mutated"

	again, _ := reg.Get("00:01")
	assert.Equal(t, descriptorFor(2), again.Flows["00:02"])
	assert.Equal(t, []string{"00:02"}, again.Neighbors)
}

func TestUpdateFlows(t *testing.T) {
	reg := newPair(t)
	reg.Do(func(tx *registry.Tx) {
		require.NoError(t, tx.RecordFlow("00:01", "00:02", descriptorFor(2)))
		require.NoError(t, tx.RecordFlow("00:02", "00:01", descriptorFor(1)))
		tx.UpdateFlows(func(_, _ string, d *flow.Descriptor) {
			d.TableID = 3
		})
	})
	for _, id := range []string{"00:01", "00:02"} {
		sw, _ := reg.Get(id)
		for _, d := range sw.Flows {
			assert.Equal(t, uint8(3), d.TableID)
		}
	}
}

func TestColors(t *testing.T) {
	reg := newPair(t)
	colors := reg.Colors(color.DLSrc)
	assert.Equal(t, map[string]color.Value{
		"00:01": color.Encode(1, color.DLSrc),
		"00:02": color.Encode(2, color.DLSrc),
	}, colors)
	assert.Equal(t, []string{"00:01", "00:02"}, reg.IDs())
}

func TestMetrics(t *testing.T) {
	tracked := metrics.NewTestGauge()
	flows := metrics.NewTestGauge()
	reg := registry.New(registry.Metrics{TrackedSwitches: tracked, InstalledFlows: flows})
	reg.Do(func(tx *registry.Tx) {
		tx.Upsert("00:01", 1)
		tx.Upsert("00:02", 2)
		require.NoError(t, tx.RecordFlow("00:01", "00:02", descriptorFor(2)))
	})
	assert.Equal(t, float64(2), metrics.GaugeValue(tracked))
	assert.Equal(t, float64(1), metrics.GaugeValue(flows))
}

func TestDiagnosticsWrite(t *testing.T) {
	reg := newPair(t)
	var buf bytes.Buffer
	reg.DiagnosticsWrite(&buf, color.DLSrc)
	out := buf.String()
	assert.Contains(t, out, "SWITCHES: 2")
	assert.Contains(t, out, "DL_SRC")
	assert.Contains(t, out, "00:01")
	assert.Contains(t, out, color.Encode(2, color.DLSrc).String())
}

func TestConcurrentAccess(t *testing.T) {
	reg := registry.New(registry.Metrics{})
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				id := string(rune('a'+i)) + ":" + string(rune('a'+j%26))
				reg.Do(func(tx *registry.Tx) {
					tx.Upsert(id, uint64(i*100+j))
				})
				_ = reg.Colors(color.DLSrc)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8*26, len(reg.IDs()))
}
