package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGooseLogger_Printf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		format    string
		args      []any
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "applied migration",
			format:    "OK   %s (%s)\n",
			args:      []any{"00002_content.sql", "1.2ms"},
			wantLevel: "info",
			wantMsg:   "OK   00002_content.sql (1.2ms)",
		},
		{
			name:      "version report",
			format:    "goose: successfully migrated database to version: %d\n",
			args:      []any{2},
			wantLevel: "debug",
			wantMsg:   "goose: successfully migrated database to version: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			ctx := zerolog.New(&buf).Level(zerolog.DebugLevel).WithContext(context.Background())

			NewGooseLoggerFromCtx(ctx).Printf(tt.format, tt.args...)

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, tt.wantMsg, line["message"])
			assert.Equal(t, "migrations", line["component"])
		})
	}
}
