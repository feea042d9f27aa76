package notion_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge-io/notion-client/pkg/notion"
)

func TestInterceptorChain(t *testing.T) {
	t.Parallel()
	t.Run("request interceptors run in order", func(t *testing.T) {
		t.Parallel()

		chain := notion.NewInterceptorChain()

		var order []string

		chain.AddRequestInterceptor(func(ctx context.Context, req *notion.Request) error {
			order = append(order, "first")

			return nil
		})
		chain.AddRequestInterceptor(func(ctx context.Context, req *notion.Request) error {
			order = append(order, "second")

			return nil
		})

		err := chain.ExecuteRequestInterceptors(context.Background(), &notion.Request{Method: "GET", Path: "/v1/users"})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("a failing interceptor stops the chain", func(t *testing.T) {
		t.Parallel()

		chain := notion.NewInterceptorChain()

		ran := false

		chain.AddRequestInterceptor(func(ctx context.Context, req *notion.Request) error {
			return errBoom
		})
		chain.AddRequestInterceptor(func(ctx context.Context, req *notion.Request) error {
			ran = true

			return nil
		})

		err := chain.ExecuteRequestInterceptors(context.Background(), &notion.Request{})
		require.ErrorIs(t, err, errBoom)
		assert.False(t, ran)
	})

	t.Run("response interceptors see the request and the response", func(t *testing.T) {
		t.Parallel()

		chain := notion.NewInterceptorChain()

		var seenStatus int

		chain.AddResponseInterceptor(func(ctx context.Context, req *notion.Request, resp *notion.Response) error {
			seenStatus = resp.StatusCode

			return nil
		})

		err := chain.ExecuteResponseInterceptors(context.Background(), &notion.Request{}, &notion.Response{StatusCode: 200})
		require.NoError(t, err)
		assert.Equal(t, 200, seenStatus)
	})
}

func TestAuthenticationInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := notion.AuthenticationInterceptor(func(ctx context.Context) (string, error) {
		return "secret_token", nil
	})

	req := &notion.Request{Method: "GET", Path: "/v1/users/me"}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "Bearer secret_token", req.Headers.Get("Authorization"))
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := notion.HeaderInterceptor(map[string]string{"X-Trace-Id": "abc123"})

	req := &notion.Request{Headers: make(http.Header)}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "abc123", req.Headers.Get("X-Trace-Id"))
}

func TestRateLimitInterceptor(t *testing.T) {
	t.Parallel()
	t.Run("allows requests up to the bucket size immediately", func(t *testing.T) {
		t.Parallel()

		interceptor := notion.RateLimitInterceptor(3)

		start := time.Now()

		for i := 0; i < 3; i++ {
			require.NoError(t, interceptor(context.Background(), &notion.Request{}))
		}

		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("honors context cancellation while waiting", func(t *testing.T) {
		t.Parallel()

		interceptor := notion.RateLimitInterceptor(1)

		require.NoError(t, interceptor(context.Background(), &notion.Request{}))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := interceptor(ctx, &notion.Request{})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("refills from elapsed time", func(t *testing.T) {
		t.Parallel()

		interceptor := notion.RateLimitInterceptor(100)

		for i := 0; i < 100; i++ {
			require.NoError(t, interceptor(context.Background(), &notion.Request{}))
		}

		// The bucket is empty; the next token arrives after ~10ms.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		require.NoError(t, interceptor(ctx, &notion.Request{}))
	})
}

func TestMetricsInterceptors(t *testing.T) {
	t.Parallel()

	collector := notion.NewMetricsCollector()
	request := notion.MetricsRequestInterceptor(collector)
	response := notion.MetricsResponseInterceptor(collector)

	req := &notion.Request{Method: "GET", Path: "/v1/users"}

	require.NoError(t, request(context.Background(), req))
	require.NoError(t, response(context.Background(), req, &notion.Response{StatusCode: 200}))
	require.NoError(t, request(context.Background(), req))
	require.NoError(t, response(context.Background(), req, &notion.Response{StatusCode: 500}))

	metrics := collector.GetMetrics("GET /v1/users")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.False(t, metrics.LastRequestTime.IsZero())

	assert.Nil(t, collector.GetMetrics("GET /v1/other"))
}

func TestMetricsCollectorOnChange(t *testing.T) {
	t.Parallel()

	collector := notion.NewMetricsCollector()

	var notified string

	collector.SetOnChange(func(endpoint string, metrics *notion.Metrics) {
		notified = endpoint
	})

	response := notion.MetricsResponseInterceptor(collector)
	require.NoError(t, response(context.Background(), &notion.Request{Method: "POST", Path: "/v1/pages"}, &notion.Response{StatusCode: 200}))
	assert.Equal(t, "POST /v1/pages", notified)
}

func TestMetricsCollectorConcurrentUse(t *testing.T) {
	t.Parallel()

	collector := notion.NewMetricsCollector()
	request := notion.MetricsRequestInterceptor(collector)
	response := notion.MetricsResponseInterceptor(collector)

	const (
		goroutines = 8
		iterations = 50
	)

	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		i := i

		wg.Add(1)

		go func() {
			defer wg.Done()

			// Half the goroutines share each endpoint so map entries are
			// both created and updated concurrently.
			path := fmt.Sprintf("/v1/pages/%d", i%2)

			for j := 0; j < iterations; j++ {
				req := &notion.Request{Method: "GET", Path: path}
				assert.NoError(t, request(context.Background(), req))
				assert.NoError(t, response(context.Background(), req, &notion.Response{StatusCode: 200}))

				collector.GetMetrics("GET " + path)
			}
		}()
	}

	wg.Wait()

	var total int64

	for _, endpoint := range []string{"GET /v1/pages/0", "GET /v1/pages/1"} {
		metrics := collector.GetMetrics(endpoint)
		require.NotNil(t, metrics)
		assert.Zero(t, metrics.TotalErrors)

		total += metrics.TotalRequests
	}

	assert.Equal(t, int64(goroutines*iterations), total)
}

func TestMetricsCollectorSnapshotIsolation(t *testing.T) {
	t.Parallel()

	collector := notion.NewMetricsCollector()
	response := notion.MetricsResponseInterceptor(collector)

	require.NoError(t, response(context.Background(), &notion.Request{Method: "GET", Path: "/v1/users"}, &notion.Response{StatusCode: 200}))

	first := collector.GetMetrics("GET /v1/users")
	require.NotNil(t, first)

	// Mutating a returned snapshot must not leak into the collector.
	first.TotalRequests = 99

	second := collector.GetMetrics("GET /v1/users")
	require.NotNil(t, second)
	assert.Equal(t, int64(1), second.TotalRequests)
}
