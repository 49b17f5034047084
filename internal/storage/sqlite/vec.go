package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/sandevgo/mentoria/pkg/sqlite"
)

// serializeVector converts a float32 slice to the BLOB layout sqlite-vec reads.
func serializeVector(vec []float32) ([]byte, error) {
	blob, err := sqlite.SerializeVector(vec)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize vector: %w", err)
	}
	return blob, nil
}

// marshalJSON encodes v for a TEXT column.
func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
