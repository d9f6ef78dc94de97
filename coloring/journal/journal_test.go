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

package journal_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/journal"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
	"github.com/sdnprobe/coloring/private/storage/db"
)

func newJournal(t *testing.T, m journal.Metrics) *journal.Backend {
	t.Helper()
	b, err := journal.New(filepath.Join(t.TempDir(), "journal.db"), nil, m)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, b.Close()) })
	return b
}

func outcome(id string, action flow.RequestAction, at time.Time, err error) flow.Outcome {
	d := flow.NewDescriptor(color.DLSrc, color.Encode(2, color.DLSrc),
		0xac00000000000001, flow.BaseGroup, 0)
	return flow.Outcome{
		Request: flow.Request{SwitchID: id, Action: action, Flows: []flow.Descriptor{d},
			Force: true},
		Time: at,
		Err:  err,
	}
}

func TestRecordList(t *testing.T) {
	queries := metrics.NewTestCounter()
	b := newJournal(t, journal.Metrics{QueriesTotal: queries})
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, b.Record(ctx, outcome("00:01", flow.Install, now, nil)))
	require.NoError(t, b.Record(ctx, outcome("00:02", flow.Delete, now.Add(time.Second),
		serrors.Join(flow.ErrDelivery, nil, "status", 500))))

	entries, err := b.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "00:02", entries[0].SwitchID)
	assert.Equal(t, flow.Delete, entries[0].Action)
	assert.Equal(t, prom.ErrNetwork, entries[0].Result)
	assert.Contains(t, entries[0].Error, "status=500")
	assert.True(t, now.Add(time.Second).Equal(entries[0].Time))

	assert.Equal(t, "00:01", entries[1].SwitchID)
	assert.Equal(t, prom.Success, entries[1].Result)
	assert.Empty(t, entries[1].Error)
	assert.Equal(t, 1, entries[1].Flows)
	assert.JSONEq(t, `{"flows":[{"match":{"dl_src":"ee:ee:ee:ee:ee:02"},"priority":50000,`+
		`"actions":[{"action_type":"output","port":4294967293}],`+
		`"cookie":12393906174523604993,"owner":"coloring","table_group":"base",`+
		`"table_id":0}],"force":true}`, string(entries[1].Payload))

	limited, err := b.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	assert.Equal(t, float64(2), metrics.CounterValue(queries.With(
		"operation", "record", prom.LabelResult, prom.Success)))
	assert.Equal(t, float64(2), metrics.CounterValue(queries.With(
		"operation", "list", prom.LabelResult, prom.Success)))
}

func TestPrune(t *testing.T) {
	b := newJournal(t, journal.Metrics{})
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, b.Record(ctx, outcome("00:01", flow.Install, now.Add(-2*time.Hour), nil)))
	require.NoError(t, b.Record(ctx, outcome("00:02", flow.Install, now, nil)))

	deleted, err := b.Prune(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	entries, err := b.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "00:02", entries[0].SwitchID)
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	sqlite, err := db.NewSqlite(path, nil)
	require.NoError(t, err)
	require.NoError(t, sqlite.Setup(`CREATE TABLE other(id INTEGER);`, 7))
	require.NoError(t, sqlite.Close())

	_, err = journal.New(path, nil, journal.Metrics{})
	assert.ErrorIs(t, err, db.ErrSchema)
}
