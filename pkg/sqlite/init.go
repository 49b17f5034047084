// Package sqlite registers a go-sqlite3 driver with the sqlite-vec extension
// loaded into every connection.
package sqlite

import (
	"database/sql"

	vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/mattn/go-sqlite3"
)

const DriverName = "sqlite3_vec"

func init() {
	vec.Auto()

	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			_, err := conn.Exec("PRAGMA busy_timeout = 5000; PRAGMA foreign_keys = ON;", nil)
			return err
		},
	})
}

// SerializeVector encodes a float32 vector as a sqlite-vec BLOB.
func SerializeVector(v []float32) ([]byte, error) {
	return vec.SerializeFloat32(v)
}
