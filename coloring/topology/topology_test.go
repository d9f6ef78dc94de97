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

package topology_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/coloring/topology"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
)

const (
	s1 = "00:00:00:00:00:00:00:01"
	s2 = "00:00:00:00:00:00:00:02"
	s3 = "00:00:00:00:00:00:00:03"
)

func TestLoad(t *testing.T) {
	raw, err := os.ReadFile("testdata/topology.json")
	require.NoError(t, err)
	snap, err := topology.Load(raw)
	require.NoError(t, err)

	want := topology.Snapshot{
		Switches: []topology.Switch{
			{ID: s1, Enabled: true, Status: topology.StatusUp, OFPVersion: "0x04"},
			{ID: s2, Enabled: true, Status: topology.StatusUp, OFPVersion: "0x04"},
			{ID: s3, Status: topology.StatusDisabled, OFPVersion: "0x01"},
		},
		Links: []topology.Link{
			{ID: "1a2b3c4d", A: s2, B: s3},
			{ID: "4d42dc08", A: s1, B: s2, Enabled: true},
		},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	sw, ok := snap.Switch(s3)
	require.True(t, ok)
	assert.False(t, sw.Up())
	_, ok = snap.Switch("00:00:00:00:00:00:00:09")
	assert.False(t, ok)
	assert.Len(t, snap.SwitchIndex(), 3)
}

func TestLoadErrors(t *testing.T) {
	testCases := map[string]string{
		"not json":       `{"topology":`,
		"wrong switches": `{"topology":{"switches":[1,2]}}`,
		"wrong endpoint": `{"topology":{"links":{"x":{"endpoint_a":"00:01"}}}}`,
	}
	for name, input := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := topology.Load([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	snap, err := topology.LoadFromFile("testdata/topology.yml")
	require.NoError(t, err)
	raw, err := json.Marshal(topology.Document{Topology: snap})
	require.NoError(t, err)
	again, err := topology.Load(raw)
	require.NoError(t, err)
	assert.Equal(t, snap, again)
}

func TestLinkJSON(t *testing.T) {
	var l topology.Link
	require.NoError(t, json.Unmarshal([]byte(
		`{"endpoint_a":{"switch":"a"},"endpoint_b":{"switch":"b"},"enabled":true}`), &l))
	assert.Equal(t, topology.Link{A: "a", B: "b", Enabled: true}, l)
}

func TestLoadFromFile(t *testing.T) {
	testCases := map[string]struct {
		Path      string
		Assertion assert.ErrorAssertionFunc
		Switches  int
		Links     int
	}{
		"valid": {
			Path:      "testdata/topology.yml",
			Assertion: assert.NoError,
			Switches:  2,
			Links:     1,
		},
		"missing": {
			Path:      "testdata/missing.yml",
			Assertion: assert.Error,
		},
		"unknown key": {
			Path:      "testdata/unknown_key.yml",
			Assertion: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			snap, err := topology.FileSource{Path: tc.Path}.Fetch(context.Background())
			tc.Assertion(t, err)
			assert.Len(t, snap.Switches, tc.Switches)
			assert.Len(t, snap.Links, tc.Links)
		})
	}
	snap, err := topology.LoadFromFile("testdata/topology.yml")
	require.NoError(t, err)
	assert.Equal(t, s1, snap.Switches[0].ID)
	assert.Equal(t, topology.Link{ID: "s1-s2", A: s1, B: s2, Enabled: true}, snap.Links[0])
}

func TestHTTPSource(t *testing.T) {
	raw, err := os.ReadFile("testdata/topology.json")
	require.NoError(t, err)
	t.Run("ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/kytos/topology/v3/", r.URL.Path)
			_, _ = w.Write(raw)
		}))
		defer srv.Close()
		snap, err := topology.HTTPSource{URL: srv.URL + "/api/kytos/topology/v3/"}.
			Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, snap.Switches, 3)
	})
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
		defer srv.Close()
		_, err := topology.HTTPSource{URL: srv.URL, Client: srv.Client()}.
			Fetch(context.Background())
		assert.ErrorIs(t, err, topology.ErrFetch)
	})
}

type staticSource struct {
	snap topology.Snapshot
	err  error
}

func (s staticSource) Fetch(context.Context) (topology.Snapshot, error) {
	return s.snap, s.err
}

func TestPoller(t *testing.T) {
	t.Run("hands snapshot to handler", func(t *testing.T) {
		fetches := metrics.NewTestCounter()
		want := topology.Snapshot{Switches: []topology.Switch{{ID: s1}}}
		var got []topology.Snapshot
		p := &topology.Poller{
			Source: staticSource{snap: want},
			Handler: func(_ context.Context, s topology.Snapshot) {
				got = append(got, s)
			},
			Metrics: topology.PollerMetrics{Fetches: fetches},
		}
		p.Run(context.Background())
		assert.Equal(t, []topology.Snapshot{want}, got)
		assert.Equal(t, float64(1), metrics.CounterValue(
			fetches.With(prom.LabelResult, prom.Success)))
		assert.Equal(t, "coloring_topology_poller", p.Name())
	})
	t.Run("fetch error skips handler", func(t *testing.T) {
		fetches := metrics.NewTestCounter()
		p := &topology.Poller{
			Source: staticSource{err: topology.ErrFetch},
			Handler: func(context.Context, topology.Snapshot) {
				t.Fatal("handler must not be called")
			},
			Metrics: topology.PollerMetrics{Fetches: fetches},
		}
		p.Run(context.Background())
		assert.Equal(t, float64(1), metrics.CounterValue(
			fetches.With(prom.LabelResult, prom.ErrNetwork)))
	})
}
