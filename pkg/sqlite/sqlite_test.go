package sqlite

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	require.NoError(t, db.Ping())
	return db
}

func TestSQLiteVecExtension(t *testing.T) {
	t.Parallel()
	db := openMemory(t)

	var version string
	require.NoError(t, db.QueryRow("SELECT vec_version()").Scan(&version))
	assert.NotEmpty(t, version)
}

func TestCosineDistanceOrdering(t *testing.T) {
	t.Parallel()
	db := openMemory(t)

	_, err := db.Exec(`CREATE TABLE items (name TEXT, embedding BLOB)`)
	require.NoError(t, err)

	rows := map[string][]float32{
		"same":       {1, 0, 0},
		"orthogonal": {0, 1, 0},
		"close":      {0.9, 0.1, 0},
	}
	for name, v := range rows {
		blob, err := SerializeVector(v)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO items (name, embedding) VALUES (?, ?)`, name, blob)
		require.NoError(t, err)
	}

	query, err := SerializeVector([]float32{1, 0, 0})
	require.NoError(t, err)

	res, err := db.Query(`SELECT name FROM items ORDER BY vec_distance_cosine(embedding, ?) LIMIT 2`, query)
	require.NoError(t, err)
	defer res.Close()

	var got []string
	for res.Next() {
		var name string
		require.NoError(t, res.Scan(&name))
		got = append(got, name)
	}
	require.NoError(t, res.Err())
	assert.Equal(t, []string{"same", "close"}, got)
}

func TestForeignKeysEnabled(t *testing.T) {
	t.Parallel()
	db := openMemory(t)

	var on int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&on))
	assert.Equal(t, 1, on)
}
