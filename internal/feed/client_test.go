package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_RecentTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mempool/recent", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"txid":"aa","vsize":140},{"txid":"bb","vsize":255}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	items, err := client.RecentTransactions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	// Payloads come back verbatim.
	assert.JSONEq(t, `{"txid":"aa","vsize":140}`, string(items[0]))
}

func TestClient_Blocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blocks", r.URL.Path)
		w.Write([]byte(`[{"height":835000,"id":"0000abc"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	items, err := client.Blocks(context.Background())

	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blocks", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "///")

	_, err := client.Blocks(context.Background())

	assert.NoError(t, err)
}

func TestClient_Non2xxIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	items, err := client.RecentTransactions(context.Background())

	assert.Nil(t, items)
	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusTooManyRequests, fetchErr.Status)
}

func TestClient_UnreachableIsFetchError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	_, err := client.Blocks(context.Background())

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestClient_MalformedBodyIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.RecentTransactions(context.Background())

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}
