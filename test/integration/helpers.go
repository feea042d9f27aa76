//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pageforge-io/notion-client/pkg/notion"
	"github.com/pageforge-io/notion-client/pkg/notionclient"
)

// newAPIServer starts a fake API server for the given mux and tears it down
// with the test.
func newAPIServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// newTestClient builds a client against the fake server with fast retries so
// transient-failure workflows finish quickly.
func newTestClient(t *testing.T, baseURL string) notion.Client {
	t.Helper()

	client, err := notionclient.New(&notion.Config{
		Token:   "secret_integration",
		BaseURL: baseURL,
		Retry: &notion.RetryConfig{
			Strategy:   notion.BackoffFixed,
			MaxRetries: 3,
			BaseDelay:  time.Millisecond,
			MaxDelay:   10 * time.Millisecond,
		},
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

// writeJSON encodes v as the response body.
func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

// listBody builds a paginated list response body.
func listBody(results any, nextCursor string, hasMore bool) map[string]any {
	body := map[string]any{
		"object":   "list",
		"results":  results,
		"has_more": hasMore,
	}

	if nextCursor != "" {
		body["next_cursor"] = nextCursor
	} else {
		body["next_cursor"] = nil
	}

	return body
}

// makeUser builds a user fixture.
func makeUser(id, name string) map[string]any {
	return map[string]any{
		"object": "user",
		"id":     id,
		"type":   "person",
		"name":   name,
		"email":  fmt.Sprintf("%s@example.com", id),
	}
}

// makePage builds a page fixture with a single title property.
func makePage(id, title string) map[string]any {
	return map[string]any{
		"object": "page",
		"id":     id,
		"properties": map[string]any{
			"title": map[string]any{
				"type": "title",
				"title": []map[string]any{{
					"type":       "text",
					"text":       map[string]any{"content": title},
					"plain_text": title,
				}},
			},
		},
	}
}
