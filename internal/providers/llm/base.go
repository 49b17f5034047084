package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/mentoria/pkg/retry"
)

const (
	requestTimeout = 120 * time.Second
	// caps both the response read and the excerpt quoted in errors
	maxResponseBytes = 4 << 20
	maxErrorExcerpt  = 512
)

// baseProvider is the JSON-over-HTTP client shared by the OpenAI-compatible
// planners. It classifies failures for the planner's retrier.
type baseProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func newBaseProvider(baseURL, apiKey, model string) baseProvider {
	return baseProvider{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// postJSON sends body to path and decodes a 200 response into out. Statuses
// that retrying cannot fix come back wrapped in retry.Permanent.
func (b *baseProvider) postJSON(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return retry.Permanent(fmt.Errorf("%s: marshal request: %w", b.model, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return retry.Permanent(fmt.Errorf("%s: create request: %w", b.model, err))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request: %w", b.model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", b.model, err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%s: http %d: %s", b.model, resp.StatusCode, excerpt(raw))
		if !retryableStatus(resp.StatusCode) {
			return retry.Permanent(err)
		}
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", b.model, err)
	}
	return nil
}

func (b *baseProvider) Model() string {
	return b.model
}

// retryableStatus reports whether a failed HTTP call is worth repeating.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= 500
}

func excerpt(raw []byte) string {
	if len(raw) > maxErrorExcerpt {
		return string(raw[:maxErrorExcerpt]) + "..."
	}
	return string(raw)
}
