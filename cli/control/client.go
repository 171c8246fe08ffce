package control

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"rssingest/app"
)

type Client struct {
	addr string
	http *http.Client
}

// NewClient talks to a control server at addr. The client has no timeout
// since an ingestion spans the whole feed batch.
func NewClient(addr string) *Client {
	return &Client{addr: addr, http: &http.Client{}}
}

// Trigger asks the running server for one ingestion and returns its result.
func (c *Client) Trigger(ctx context.Context, ev app.Event) (app.InvocationResult, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return app.InvocationResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+c.addr+"/ingest", bytes.NewReader(body))
	if err != nil {
		return app.InvocationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return app.InvocationResult{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return app.InvocationResult{}, fmt.Errorf("reading response: %w", err)
	}
	return app.InvocationResult{StatusCode: resp.StatusCode, Body: string(data)}, nil
}
