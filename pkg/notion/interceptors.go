package notion

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Request represents an HTTP request that can be intercepted.
type Request struct {
	Method   string
	Path     string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response represents an HTTP response that can be intercepted.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common Interceptors

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil {
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// RateLimitInterceptor implements client-side rate limiting with a token
// bucket, keeping request rates under the server's published ceiling so
// retries are the exception rather than the norm. The bucket starts full and
// refills on demand from elapsed time; no background goroutine is involved,
// so an interceptor can be dropped without cleanup.
func RateLimitInterceptor(requestsPerSecond int) RequestInterceptor {
	bucket := &tokenBucket{
		capacity: float64(requestsPerSecond),
		tokens:   float64(requestsPerSecond),
		perSec:   float64(requestsPerSecond),
		last:     time.Now(),
	}

	return func(ctx context.Context, req *Request) error {
		return bucket.wait(ctx)
	}
}

// tokenBucket is a mutex-guarded token bucket refilled lazily on each take.
type tokenBucket struct {
	mu       sync.Mutex
	capacity float64
	tokens   float64
	perSec   float64
	last     time.Time
}

// wait blocks until a token is available or ctx is done.
func (b *tokenBucket) wait(ctx context.Context) error {
	for {
		b.mu.Lock()

		now := time.Now()
		b.tokens += now.Sub(b.last).Seconds() * b.perSec
		b.last = now

		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}

		if b.tokens >= 1 {
			b.tokens--
			b.mu.Unlock()

			return nil
		}

		delay := time.Duration((1 - b.tokens) / b.perSec * float64(time.Second))
		b.mu.Unlock()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}
}

// AuthenticationInterceptor adds a Bearer token header.
func AuthenticationInterceptor(tokenProvider func(context.Context) (string, error)) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		token, err := tokenProvider(ctx)
		if err != nil {
			return fmt.Errorf("failed to get authentication token: %w", err)
		}

		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		req.Headers.Set("Authorization", "Bearer "+token)

		return nil
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// Metrics aggregates call statistics for one endpoint.
type Metrics struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
}

// metadataStartTime keys the request start time stashed in Request.Metadata.
const metadataStartTime = "start_time"

// MetricsCollector collects API metrics per endpoint, keyed "METHOD path".
// It is safe for concurrent use; the transport runs interceptors from
// whatever goroutine issued the call.
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*Metrics
	onChange func(endpoint string, metrics *Metrics)
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
	}
}

// SetOnChange sets a callback for when metrics change. The callback receives
// a snapshot and is invoked outside the collector's lock, so it may call back
// into the collector.
func (m *MetricsCollector) SetOnChange(fn func(endpoint string, metrics *Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

// GetMetrics returns a snapshot of the metrics for an endpoint, or nil when
// the endpoint has not been called.
func (m *MetricsCollector) GetMetrics(endpoint string) *Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if metrics, ok := m.metrics[endpoint]; ok {
		snapshot := *metrics

		return &snapshot
	}

	return nil
}

// record folds one completed call into the endpoint's totals and returns a
// snapshot plus the callback to notify, if any.
func (m *MetricsCollector) record(endpoint string, latency time.Duration, hasLatency, failed bool) (*Metrics, func(string, *Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		metrics = &Metrics{}
		m.metrics[endpoint] = metrics
	}

	metrics.TotalRequests++
	metrics.LastRequestTime = time.Now()

	if hasLatency {
		metrics.TotalLatency += latency
		metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)
	}

	if failed {
		metrics.TotalErrors++
	}

	snapshot := *metrics

	return &snapshot, m.onChange
}

// MetricsRequestInterceptor records the request start time so the response
// interceptor can compute latency.
func MetricsRequestInterceptor(collector *MetricsCollector) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metadataStartTime] = time.Now()

		return nil
	}
}

// MetricsResponseInterceptor folds the completed call into the collector.
// Transport errors and 4xx/5xx statuses both count as failures.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		endpoint := fmt.Sprintf("%s %s", req.Method, req.Path)

		var (
			latency    time.Duration
			hasLatency bool
		)

		if req.Metadata != nil {
			if startTime, ok := req.Metadata[metadataStartTime].(time.Time); ok {
				latency = time.Since(startTime)
				hasLatency = true
			}
		}

		failed := resp.Error != nil || resp.StatusCode >= 400

		snapshot, onChange := collector.record(endpoint, latency, hasLatency, failed)
		if onChange != nil {
			onChange(endpoint, snapshot)
		}

		return nil
	}
}
