// Package netx holds small HTTP helpers shared by TukTask clients.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of an unexpected response body is read.
const maxErrorBody = 4 << 10

// Request describes one JSON call. Body and Out may be nil.
type Request struct {
	Method string
	URL    string
	Token  string
	Body   any
	Out    any
}

// DoJSON sends r and decodes the response body into r.Out regardless of
// status, returning the status code. A body that is not JSON is reported
// as an error that includes its beginning.
func DoJSON(ctx context.Context, client *http.Client, r Request) (int, error) {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if r.Out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(data, r.Out); err != nil {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return resp.StatusCode, fmt.Errorf("unexpected response: %s; body: %s", resp.Status, string(data))
	}

	return resp.StatusCode, nil
}
