package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notionhttp "github.com/pageforge-io/notion-client/internal/http"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

func fastRetryConfig(maxRetries int) *notion.RetryConfig {
	return &notion.RetryConfig{
		Strategy:          notion.BackoffFixed,
		MaxRetries:        maxRetries,
		BaseDelay:         time.Millisecond,
		MaxDelay:          10 * time.Millisecond,
		RespectRetryAfter: true,
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/users/me", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.NotEmpty(t, request.Header.Get("Notion-Version"))

			response := map[string]string{"object": "user", "id": "user-id"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "test-token")

		req := &notionhttp.Request{
			Method: "GET",
			Path:   "/v1/users/me",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "user", result["object"])
		assert.Equal(t, "user-id", result["id"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/users", request.URL.Path)
			assert.Equal(t, "page_size=2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "")

		req := &notionhttp.Request{
			Method: "GET",
			Path:   "/v1/users",
			Query:  url.Values{"page_size": []string{"2"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "meeting notes", body["query"])

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "")

		req := &notionhttp.Request{
			Method: "POST",
			Path:   "/v1/search",
			Body:   map[string]string{"query": "meeting notes"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"object":  "error",
				"status":  404,
				"code":    "object_not_found",
				"message": "Could not find page",
			})
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "")

		resp, err := client.Get(context.Background(), "/v1/pages/invalid", nil)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		apiErr := &notion.APIError{}
		ok := errors.As(err, &apiErr)
		require.True(t, ok)
		assert.Equal(t, "object_not_found", apiErr.Code)
		assert.True(t, notion.IsNotFound(err))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "")

		req := &notionhttp.Request{
			Method: "GET",
			Path:   "/v1/users",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := notionhttp.NewClient(server.URL, "", notionhttp.WithLogger(logger), notionhttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/v1/users", nil)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("interceptors run around the request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "injected", request.Header.Get("X-Injected"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		chain := notion.NewInterceptorChain()
		chain.AddRequestInterceptor(notion.HeaderInterceptor(map[string]string{"X-Injected": "injected"}))

		var observedStatus int

		chain.AddResponseInterceptor(func(ctx context.Context, req *notion.Request, resp *notion.Response) error {
			observedStatus = resp.StatusCode

			return nil
		})

		client := notionhttp.NewClient(server.URL, "", notionhttp.WithInterceptors(chain))

		resp, err := client.Get(context.Background(), "/v1/users", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 200, observedStatus)
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*notionhttp.Client, context.Context) (*notionhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *notionhttp.Client, ctx context.Context) (*notionhttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *notionhttp.Client, ctx context.Context) (*notionhttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *notionhttp.Client, ctx context.Context) (*notionhttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *notionhttp.Client, ctx context.Context) (*notionhttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := notionhttp.NewClient(server.URL, "")
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "", notionhttp.WithRetryConfig(fastRetryConfig(3)))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, attempts)
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "", notionhttp.WithRetryConfig(fastRetryConfig(3)))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "", notionhttp.WithRetryConfig(fastRetryConfig(3)))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, 1, attempts) // Should not retry
	})

	t.Run("exhausted rate limit surfaces terminal error", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.Header().Set("Retry-After", "1")
			writer.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"object":  "error",
				"status":  429,
				"code":    "rate_limited",
				"message": "Rate limited",
			})
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "", notionhttp.WithRetryConfig(fastRetryConfig(2)))

		_, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 3, attempts) // Initial attempt plus two retries

		rateErr := &notion.RateLimitError{}
		ok := errors.As(err, &rateErr)
		require.True(t, ok)
		assert.Equal(t, time.Second, rateErr.RetryAfter)
		assert.True(t, notion.IsRateLimited(err))
	})

	t.Run("honors Retry-After over computed backoff", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		var firstAttempt, secondAttempt time.Time

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts == 1 {
				firstAttempt = time.Now()

				writer.Header().Set("Retry-After", "1")
				writer.WriteHeader(http.StatusTooManyRequests)

				return
			}

			secondAttempt = time.Now()

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := notionhttp.NewClient(server.URL, "", notionhttp.WithRetryConfig(&notion.RetryConfig{
			Strategy:          notion.BackoffFixed,
			MaxRetries:        1,
			BaseDelay:         time.Millisecond,
			MaxDelay:          time.Millisecond,
			RespectRetryAfter: true,
		}))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.GreaterOrEqual(t, secondAttempt.Sub(firstAttempt), time.Second)
	})
}
