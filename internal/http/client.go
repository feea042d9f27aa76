// Package http implements the HTTP transport for the Notion API client. It
// wraps hashicorp/go-retryablehttp, feeding it the same retryability
// classification and backoff computation the public retry engine uses, so
// transport-level calls and closure-level ExecuteWithRetry behave alike.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/pageforge-io/notion-client/internal/constants"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport. It owns a single retryablehttp client and is
// safe for concurrent use; per-call state lives entirely in the request.
type Client struct {
	baseURL      string
	token        string
	apiVersion   string
	userAgent    string
	retryConfig  *notion.RetryConfig
	logger       notion.Logger
	debug        bool
	interceptors *notion.InterceptorChain
	httpClient   *retryablehttp.Client
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(logger notion.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithAPIVersion overrides the Notion-Version header.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithRetryConfig sets the retry behavior for transient failures.
func WithRetryConfig(config *notion.RetryConfig) Option {
	return func(c *Client) {
		c.retryConfig = config
	}
}

// WithTimeout bounds each individual transport attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors sets the interceptor chain run around every request.
func WithInterceptors(chain *notion.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new transport for the given endpoint and integration
// token. An empty token sends unauthenticated requests.
func NewClient(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		token:       token,
		apiVersion:  constants.APIVersion,
		userAgent:   "notion-client-go",
		retryConfig: notion.DefaultRetryConfig(),
		httpClient:  retryablehttp.NewClient(),
	}

	client.httpClient.Logger = nil
	client.httpClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	for _, opt := range opts {
		opt(client)
	}

	if client.debug && client.logger != nil {
		client.httpClient.Logger = &leveledLogger{logger: client.logger}
	}

	client.httpClient.RetryMax = client.retryConfig.MaxRetries
	client.httpClient.RetryWaitMin = client.retryConfig.BaseDelay
	client.httpClient.RetryWaitMax = client.retryConfig.MaxDelay
	client.httpClient.CheckRetry = client.checkRetry
	client.httpClient.Backoff = client.backoff
	client.httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return client
}

// leveledLogger adapts notion.Logger to retryablehttp's LeveledLogger so
// retry decisions appear in debug output.
type leveledLogger struct {
	logger notion.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, logFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, logFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, logFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, logFields(keysAndValues))
}

// logFields folds retryablehttp's key/value pairs into a field map.
func logFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}

// checkRetry classifies one attempt: 429 and 5xx responses and
// connection-level failures are transient, everything else propagates.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp == nil {
		return false, nil
	}

	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError, nil
}

// backoff computes the wait before the next attempt. A server-provided
// Retry-After hint overrides the computed delay entirely when the config
// says to respect it.
func (c *Client) backoff(minDelay, maxDelay time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if c.retryConfig.RespectRetryAfter && resp != nil {
		if hint, ok := notion.ParseRetryAfter(resp.Header.Get("Retry-After")); ok {
			return hint
		}
	}

	return c.retryConfig.Delay(attemptNum)
}

// Do executes a request and returns the response. Failed responses are
// returned alongside a typed error: *notion.APIError for server-reported
// failures, *notion.RateLimitError when the retry budget was exhausted on
// 429s, *notion.TransportError for connection-level failures.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := marshalBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	intercepted, err := c.runRequestInterceptors(ctx, req, body)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.buildRequest(ctx, req, body, intercepted)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		transportErr := &notion.TransportError{Op: req.Method + " " + req.Path, Err: err}
		c.runResponseInterceptors(ctx, req, &notion.Response{Error: transportErr})

		return nil, transportErr
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &notion.TransportError{Op: "reading response body", Err: err}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		})
	}

	respErr := c.responseError(resp)
	c.runResponseInterceptors(ctx, req, &notion.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
		Error:      respErr,
	})

	if respErr != nil {
		return resp, respErr
	}

	return resp, nil
}

// responseError maps a failed response to a typed error. A 429 surfacing
// here has already exhausted the transport retry budget, so it becomes the
// terminal rate-limit error carrying the last Retry-After hint.
func (c *Client) responseError(resp *Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := notion.ParseAPIError(resp.StatusCode, resp.Body)

	if hint, ok := notion.ParseRetryAfter(resp.Headers.Get("Retry-After")); ok {
		apiErr.RetryAfter = &hint
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		rateErr := &notion.RateLimitError{
			Attempts: c.retryConfig.MaxRetries + 1,
			Err:      apiErr,
		}

		if apiErr.RetryAfter != nil {
			rateErr.RetryAfter = *apiErr.RetryAfter
		}

		return rateErr
	}

	return apiErr
}

// buildRequest assembles the retryablehttp request with auth and protocol
// headers. Interceptor-set headers are applied before per-request headers.
func (c *Client) buildRequest(ctx context.Context, req *Request, body []byte, intercepted *notion.Request) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Notion-Version", c.apiVersion)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if intercepted != nil {
		for key, values := range intercepted.Headers {
			for _, value := range values {
				httpReq.Header.Set(key, value)
			}
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// runRequestInterceptors executes the request interceptor chain, returning
// the intercepted request so header changes can be carried onto the wire.
func (c *Client) runRequestInterceptors(ctx context.Context, req *Request, body []byte) (*notion.Request, error) {
	if c.interceptors == nil {
		return nil, nil
	}

	intercepted := &notion.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
		Body:    body,
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	return intercepted, nil
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *Request, resp *notion.Response) {
	if c.interceptors == nil {
		return
	}

	intercepted := &notion.Request{Method: req.Method, Path: req.Path}

	// Interceptor failures must not mask the response itself.
	if err := c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, resp); err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

func marshalBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
