package client_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pageforge-io/notion-client/internal/client"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// newTestClient starts a test server around handler and returns a client
// pointed at it. Retries are tight so failure tests stay fast.
func newTestClient(t *testing.T, handler http.HandlerFunc, validation *notion.ValidationConfig) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(&notion.Config{
		BaseURL:    server.URL,
		Token:      "test-token",
		Validation: validation,
		Retry: &notion.RetryConfig{
			Strategy:   notion.BackoffFixed,
			MaxRetries: 1,
			BaseDelay:  time.Millisecond,
			MaxDelay:   time.Millisecond,
		},
	})
	if err != nil {
		t.Fatalf("creating test client: %v", err)
	}

	return c
}

// strOf builds a string of n repeated characters.
func strOf(c byte, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = c
	}

	return string(out)
}
