package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// FetchError reports an unreachable upstream or a non-2xx response.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client reads the two public read-only endpoints of a mempool.space-style
// API. Payloads are returned undecoded; the pollers store them verbatim.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a feed client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// RecentTransactions returns the latest observed mempool transactions.
func (c *Client) RecentTransactions(ctx context.Context) ([]json.RawMessage, error) {
	return c.getList(ctx, "/mempool/recent")
}

// Blocks returns the most recent blocks.
func (c *Client) Blocks(ctx context.Context) ([]json.RawMessage, error) {
	return c.getList(ctx, "/blocks")
}

func (c *Client) getList(ctx context.Context, path string) ([]json.RawMessage, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	return items, nil
}
