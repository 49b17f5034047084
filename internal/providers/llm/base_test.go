package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseProvider_PostJSONErrorNamesModel(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", maxErrorExcerpt+100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(long))
	}))
	defer srv.Close()

	b := newBaseProvider(srv.URL, "", "gemini-flash-compat")
	var out map[string]any
	err := b.postJSON(context.Background(), "/v1/chat/completions", map[string]string{"a": "b"}, nil, &out)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "gemini-flash-compat: http 400")
	assert.True(t, strings.HasSuffix(err.Error(), "..."))
	assert.Less(t, len(err.Error()), len(long))
}

func TestBaseProvider_PostJSONDecodes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "v", r.Header.Get("X-Extra"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	b := newBaseProvider(srv.URL, "", "m")
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, b.postJSON(context.Background(), "/x", struct{}{}, map[string]string{"X-Extra": "v"}, &out))
	assert.True(t, out.OK)
}

func TestRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want bool
	}{
		{code: http.StatusBadRequest, want: false},
		{code: http.StatusUnauthorized, want: false},
		{code: http.StatusNotFound, want: false},
		{code: http.StatusRequestTimeout, want: true},
		{code: http.StatusTooManyRequests, want: true},
		{code: http.StatusInternalServerError, want: true},
		{code: http.StatusServiceUnavailable, want: true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, retryableStatus(tt.code))
		})
	}
}
