// Copyright 2025 ETH Zurich, Anapaya Systems
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

// Package db contains the sqlite helpers shared by the storage backends.
package db

import (
	"context"
	"database/sql"
	"net/url"
	"runtime"
	"strconv"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// Reader is the read-only subset of *sql.DB.
type Reader interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Stats() sql.DBStats
}

// SqliteConfig allows configuring the sqlite database instance.
type SqliteConfig struct {
	MaxOpenReadConns int
	MaxIdleReadConns int
	InMemory         bool
}

// Sqlite holds a write pool limited to one connection and a read pool.
//
// Full can be used to perform any operation, including reads and opening
// transactions. ReadOnly must only be used for reads.
type Sqlite struct {
	Full     *sql.DB
	ReadOnly Reader
}

// NewSqlite creates a new sqlite database with a read and write connection
// pool. The write pool is limited to one open connection to avoid
// contention. The read pool defaults to a limit depending on the number of
// CPUs.
func NewSqlite(path string, cfg *SqliteConfig) (*Sqlite, error) {
	var c SqliteConfig
	if cfg != nil {
		c = *cfg
	}
	// With a shared cache, every :memory: connection would see the same
	// database, so memory databases must be named explicitly.
	if strings.Contains(path, ":memory:") {
		return nil, serrors.New("use explicitly named memory database", "path", path)
	}
	name, hasScheme := strings.CutPrefix(path, "file:")

	params := make(url.Values)
	// Start transactions with BEGIN IMMEDIATE so that busy_timeout is
	// respected when the database is locked.
	params.Add("_txlock", "immediate")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "busy_timeout(1000)")
	params.Add("_pragma", "synchronous(NORMAL)")
	params.Add("_pragma", "foreign_keys(1)")
	if c.InMemory {
		registerMemoryDB(name)
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	}
	conn := path + "?" + params.Encode()
	if !hasScheme {
		conn = "file:" + conn
	}

	write, err := sql.Open("sqlite", conn)
	if err != nil {
		return nil, NewTxError("opening write database", err, "path", path)
	}
	write.SetMaxOpenConns(1)

	read, err := sql.Open("sqlite", conn)
	if err != nil {
		write.Close()
		return nil, NewTxError("opening read database", err, "path", path)
	}
	if c.MaxOpenReadConns == 0 {
		c.MaxOpenReadConns = max(4, runtime.NumCPU())
	}
	read.SetMaxOpenConns(c.MaxOpenReadConns)
	if c.MaxIdleReadConns != 0 {
		read.SetMaxIdleConns(c.MaxIdleReadConns)
	}

	db := &Sqlite{Full: write, ReadOnly: read}
	if c.InMemory {
		runtime.AddCleanup(db, unregisterMemoryDB, name)
	}
	return db, nil
}

// Setup applies schema to an empty database and stamps it with
// schemaVersion. A database with a different, non-zero version is rejected.
func (db *Sqlite) Setup(schema string, schemaVersion int) error {
	var existing int
	if err := db.Full.QueryRow("PRAGMA user_version;").Scan(&existing); err != nil {
		return NewReadError("checking database schema version", err)
	}
	switch {
	case existing == 0:
		if _, err := db.Full.Exec(schema); err != nil {
			return NewWriteError("applying schema", err)
		}
		if _, err := db.Full.Exec("PRAGMA user_version = " + strconv.Itoa(schemaVersion)); err != nil {
			return NewWriteError("writing schema version", err)
		}
		return nil
	case existing != schemaVersion:
		return serrors.Join(ErrSchema, nil, "expected", schemaVersion, "actual", existing)
	default:
		return nil
	}
}

// Close closes both connection pools.
func (db *Sqlite) Close() error {
	var errs serrors.List
	if err := db.Full.Close(); err != nil {
		errs = append(errs, serrors.Wrap("closing write db", err))
	}
	if err := db.ReadOnly.(*sql.DB).Close(); err != nil {
		errs = append(errs, serrors.Wrap("closing read db", err))
	}
	return errs.ToError()
}

// memoryDBCheck prevents two in-memory databases with the same name, which
// would silently share state.
var memoryDBCheck = struct {
	mtx sync.Mutex
	dbs map[string]struct{}
}{
	dbs: make(map[string]struct{}),
}

func registerMemoryDB(name string) {
	memoryDBCheck.mtx.Lock()
	defer memoryDBCheck.mtx.Unlock()
	if _, ok := memoryDBCheck.dbs[name]; ok {
		panic("memory database with name " + name + " already exists")
	}
	memoryDBCheck.dbs[name] = struct{}{}
}

func unregisterMemoryDB(name string) {
	memoryDBCheck.mtx.Lock()
	defer memoryDBCheck.mtx.Unlock()
	delete(memoryDBCheck.dbs, name)
}
