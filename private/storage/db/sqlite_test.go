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

package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/private/storage/db"
)

const schema = `CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`

func TestSqliteSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.NewSqlite(path, nil)
	require.NoError(t, err)
	require.NoError(t, d.Setup(schema, 1))
	// Applying the same version again is a no-op.
	require.NoError(t, d.Setup(schema, 1))

	_, err = d.Full.Exec(`INSERT INTO items (name) VALUES (?)`, "switch")
	require.NoError(t, err)
	var name string
	require.NoError(t, d.ReadOnly.QueryRowContext(context.Background(),
		`SELECT name FROM items`).Scan(&name))
	assert.Equal(t, "switch", name)

	assert.ErrorIs(t, d.Setup(schema, 2), db.ErrSchema)
	require.NoError(t, d.Close())
}

func TestSqliteMemory(t *testing.T) {
	_, err := db.NewSqlite(":memory:", nil)
	assert.Error(t, err)

	d, err := db.NewSqlite("file:"+t.Name(), &db.SqliteConfig{InMemory: true})
	require.NoError(t, err)
	require.NoError(t, d.Setup(schema, 1))
	require.NoError(t, d.Close())
}
