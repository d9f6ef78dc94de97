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

// Package storage provides factories for the storage backends.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/journal"
	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
	"github.com/sdnprobe/coloring/pkg/private/util"
	"github.com/sdnprobe/coloring/private/config"
	"github.com/sdnprobe/coloring/private/periodic"
	"github.com/sdnprobe/coloring/private/storage/cleaner"
	"github.com/sdnprobe/coloring/private/storage/db"
)

// Backend indicates the database backend type.
type Backend string

const (
	// BackendSqlite indicates an sqlite backend.
	BackendSqlite Backend = "sqlite"
	// DefaultJournalPath is the default connection string of the journal.
	// An empty connection disables the journal.
	DefaultJournalPath = "/var/lib/coloring/%s.journal.db"
	// DefaultRetention is how long journal entries are kept.
	DefaultRetention = 7 * 24 * time.Hour
	// DefaultCleanInterval is the period of the journal cleaner.
	DefaultCleanInterval = 5 * time.Minute
)

// SetID returns a clone of the configuration that has the ID set on the
// connection string. A connection without a %s verb is left as is.
func SetID(cfg DBConfig, id string) *DBConfig {
	if strings.Count(cfg.Connection, "%s") == 1 {
		cfg.Connection = fmt.Sprintf(cfg.Connection, id)
	}
	return &cfg
}

// JournalDB is the journal as used by the service.
type JournalDB interface {
	io.Closer
	flow.Journal
	List(ctx context.Context, limit int) ([]journal.Entry, error)
}

var _ (config.Config) = (*DBConfig)(nil)

// DBConfig is the configuration for the connection to a database.
type DBConfig struct {
	Connection   string `toml:"connection,omitempty"`
	MaxOpenConns int    `toml:"max_open_conns,omitempty"`
	MaxIdleConns int    `toml:"max_idle_conns,omitempty"`
	// Retention is how long entries are kept.
	Retention util.DurWrap `toml:"retention,omitempty"`
	// CleanInterval is the period of the cleaner.
	CleanInterval util.DurWrap `toml:"clean_interval,omitempty"`
}

// InitDefaults sets the retention and clean interval. The connection has no
// default; an empty connection disables the backend.
func (cfg *DBConfig) InitDefaults() {
	cfg.Retention.InitDefault(DefaultRetention)
	cfg.CleanInterval.InitDefault(DefaultCleanInterval)
}

// Validate checks the durations.
func (cfg *DBConfig) Validate() error {
	if cfg.Retention.Duration < 0 {
		return serrors.New("retention must not be negative", "retention", cfg.Retention)
	}
	if cfg.CleanInterval.Duration < 0 {
		return serrors.New("clean_interval must not be negative",
			"clean_interval", cfg.CleanInterval)
	}
	return nil
}

// Enabled reports whether a connection is configured.
func (cfg *DBConfig) Enabled() bool {
	return cfg.Connection != ""
}

// Sample writes a config sample to the writer.
func (cfg *DBConfig) Sample(dst io.Writer, _ config.Path, ctx config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(journalSample, ctx[config.ID]))
}

// ConfigName is the key in the toml file.
func (cfg *DBConfig) ConfigName() string {
	return "journal"
}

// sqliteConfig derives the pool limits from the configuration. Limits of 0
// mean the defaults of the db package are used.
func (cfg *DBConfig) sqliteConfig() *db.SqliteConfig {
	return &db.SqliteConfig{
		MaxOpenReadConns: cfg.MaxOpenConns,
		MaxIdleReadConns: cfg.MaxIdleConns,
	}
}

// NewJournalStorage opens the journal and starts a periodic task that prunes
// entries older than the retention.
func NewJournalStorage(c DBConfig, m journal.Metrics,
	cm cleaner.Metrics) (JournalDB, error) {

	c.InitDefaults()
	log.Info("Connecting JournalDB", "backend", BackendSqlite, "connection", c.Connection)
	j, err := journal.New(c.Connection, c.sqliteConfig(), m)
	if err != nil {
		return nil, err
	}

	// Start a periodic task that cleans up old journal entries.
	cleaner := periodic.Start(
		cleaner.New(j.Prune, "coloring_journal", c.Retention.Duration, cm),
		c.CleanInterval.Duration,
		c.CleanInterval.Duration,
	)
	return journalDBWithCleaner{
		Backend: j,
		cleaner: cleaner,
	}, nil
}

// journalDBWithCleaner stops both the database and the cleanup task on
// Close.
type journalDBWithCleaner struct {
	*journal.Backend
	cleaner *periodic.Runner
}

func (b journalDBWithCleaner) Close() error {
	b.cleaner.Kill()
	return b.Backend.Close()
}
