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

// Package journal stores the outcome of every flow request in sqlite.
package journal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/private/storage/db"
)

const (
	// SchemaVersion is the version of the journal schema.
	SchemaVersion = 1
	// Schema is the SQL schema of the journal.
	Schema = `CREATE TABLE Requests(
		RowID INTEGER PRIMARY KEY AUTOINCREMENT,
		Time INTEGER NOT NULL,
		SwitchID TEXT NOT NULL,
		Action TEXT NOT NULL,
		Flows INTEGER NOT NULL,
		Payload BLOB NOT NULL,
		Result TEXT NOT NULL,
		Error TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX RequestsTime ON Requests(Time);`

	// DefaultListLimit is used when List is called without limit.
	DefaultListLimit = 100
)

const (
	opRecord = "record"
	opList   = "list"
	opPrune  = "prune"
)

var _ flow.Journal = (*Backend)(nil)

// Entry is a journaled flow request.
type Entry struct {
	ID       int64              `json:"id"`
	Time     time.Time          `json:"time"`
	SwitchID string             `json:"switch_id"`
	Action   flow.RequestAction `json:"action"`
	Flows    int                `json:"flows"`
	Payload  json.RawMessage    `json:"payload"`
	Result   string             `json:"result"`
	Error    string             `json:"error,omitempty"`
}

// Metrics are the journal metrics. All fields are optional.
type Metrics struct {
	// QueriesTotal counts queries by operation and result.
	QueriesTotal metrics.Counter
}

// Backend is the sqlite journal.
type Backend struct {
	db      *db.Sqlite
	metrics Metrics
}

// New opens the journal at path and sets up the schema if needed.
func New(path string, cfg *db.SqliteConfig, m Metrics) (*Backend, error) {
	sqlite, err := db.NewSqlite(path, cfg)
	if err != nil {
		return nil, err
	}
	if err := sqlite.Setup(Schema, SchemaVersion); err != nil {
		sqlite.Close()
		return nil, err
	}
	return &Backend{db: sqlite, metrics: m}, nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Record stores the outcome of a flow request.
func (b *Backend) Record(ctx context.Context, o flow.Outcome) error {
	return b.observe(ctx, opRecord, func(ctx context.Context) error {
		payload, err := o.Request.MarshalBody()
		if err != nil {
			return db.NewInputDataError("encoding payload", err, "switch", o.Request.SwitchID)
		}
		result, errMsg := prom.Success, ""
		if o.Err != nil {
			result, errMsg = flow.ErrorToResult(o.Err), o.Err.Error()
		}
		query := `INSERT INTO Requests (Time, SwitchID, Action, Flows, Payload, Result, Error)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		_, err = b.db.Full.ExecContext(ctx, query, o.Time.UnixNano(), o.Request.SwitchID,
			string(o.Request.Action), len(o.Request.Flows), payload, result, errMsg)
		if err != nil {
			return db.NewWriteError("inserting request", err, "switch", o.Request.SwitchID)
		}
		return nil
	})
}

// List returns up to limit entries, newest first. A non-positive limit
// means DefaultListLimit.
func (b *Backend) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var entries []Entry
	err := b.observe(ctx, opList, func(ctx context.Context) error {
		query := `SELECT RowID, Time, SwitchID, Action, Flows, Payload, Result, Error
			FROM Requests ORDER BY RowID DESC LIMIT ?`
		rows, err := b.db.ReadOnly.QueryContext(ctx, query, limit)
		if err != nil {
			return db.NewReadError("listing requests", err)
		}
		defer rows.Close()
		for rows.Next() {
			var e Entry
			var nanos int64
			var action string
			var payload []byte
			if err := rows.Scan(&e.ID, &nanos, &e.SwitchID, &action, &e.Flows,
				&payload, &e.Result, &e.Error); err != nil {
				return db.NewDataError("scanning request", err)
			}
			e.Time = time.Unix(0, nanos).UTC()
			e.Action = flow.RequestAction(action)
			e.Payload = payload
			entries = append(entries, e)
		}
		if err := rows.Err(); err != nil {
			return db.NewReadError("iterating requests", err)
		}
		return nil
	})
	return entries, err
}

// Prune deletes all entries recorded before the given time.
func (b *Backend) Prune(ctx context.Context, before time.Time) (int, error) {
	var deleted int64
	err := b.observe(ctx, opPrune, func(ctx context.Context) error {
		res, err := b.db.Full.ExecContext(ctx,
			`DELETE FROM Requests WHERE Time < ?`, before.UnixNano())
		if err != nil {
			return db.NewWriteError("pruning requests", err)
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return db.NewWriteError("counting pruned requests", err)
		}
		return nil
	})
	return int(deleted), err
}

func (b *Backend) observe(ctx context.Context, op string,
	action func(ctx context.Context) error) error {

	span, ctx := opentracing.StartSpanFromContext(ctx, "journal."+op)
	defer span.Finish()
	err := action(ctx)
	label := db.ErrToMetricLabel(err)
	if err != nil {
		ext.Error.Set(span, true)
		span.LogKV("error", err)
	}
	span.SetTag("result", label)
	metrics.CounterInc(metrics.CounterWith(b.metrics.QueriesTotal,
		"operation", op, prom.LabelResult, label))
	return err
}
