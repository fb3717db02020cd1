// Package http wraps hashicorp/go-retryablehttp with the DataHawk request
// pipeline: bearer injection, environment tagging, repeat-format queries,
// response classification, and request/response tracing.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/datahawk-io/datahawk-go/internal/constants"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// TokenManager supplies bearer tokens for authenticated requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string)
}

// Request describes one logical API call prior to transport. Path templates
// are already substituted by the resource clients before a Request is built.
type Request struct {
	Method  string
	Path    string
	Query   *datahawk.Query
	Body    interface{}
	Headers map[string]string

	// NoAuth marks public operations. No Authorization header is attached
	// even when a valid token is available.
	NoAuth bool

	// RequestID correlates trace events for this call. It is never sent
	// over the wire.
	RequestID string
}

// Response is a classified transport response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client executes Requests against the API base URL.
type Client struct {
	baseURL      string
	tokenManager TokenManager
	retryClient  *retryablehttp.Client
	userAgent    string
	env          string
	logger       datahawk.Logger
	debug        bool
	cache        datahawk.Cache
	cacheOptions *datahawk.CacheOptions
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for trace events.
func WithLogger(logger datahawk.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response tracing.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithEnv injects the environment tag header on every request.
func WithEnv(env string) Option {
	return func(c *Client) {
		c.env = env
	}
}

// WithRetryConfig tunes transport-level retries for transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = retryMax
		c.retryClient.RetryWaitMin = waitMin
		c.retryClient.RetryWaitMax = waitMax
	}
}

// WithCache enables read-through caching of successful GET responses.
func WithCache(cache datahawk.Cache, options *datahawk.CacheOptions) Option {
	return func(c *Client) {
		c.cache = cache
		if options == nil {
			options = datahawk.DefaultCacheOptions()
		}

		c.cacheOptions = options
	}
}

// NewClient creates a transport client. tokenManager may be nil, in which
// case requests go out without an Authorization header.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		retryClient:  retryClient,
		userAgent:    "datahawk-go",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// methodCarriesBody reports whether the method carries a JSON body. Anything
// else, GET included, never does, even when the caller supplied one.
func methodCarriesBody(method string) bool {
	switch method {
	case nethttp.MethodPost, nethttp.MethodPut, nethttp.MethodPatch, nethttp.MethodDelete:
		return true
	default:
		return false
	}
}

// Do executes a request and classifies the outcome. Responses with a 4xx or
// 5xx status return both the response and an *datahawk.APIError carrying the
// raw error payload; transport failures surface unmodified.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	method := strings.ToUpper(req.Method)

	url := c.baseURL + req.Path
	if !req.Query.IsEmpty() {
		url += "?" + req.Query.Encode()
	}

	if cached := c.cacheLookup(ctx, method, url); cached != nil {
		return cached, nil
	}

	headers := nethttp.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", c.userAgent)

	if c.env != "" {
		headers.Set(constants.EnvHeader, c.env)
	}

	if !req.NoAuth && c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, err
		}

		if token != "" {
			headers.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	var rawBody []byte

	if methodCarriesBody(method) && req.Body != nil {
		var err error

		rawBody, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		headers.Set("Content-Type", "application/json")
	}

	requestID := req.RequestID
	if requestID == "" && c.debug {
		requestID = uuid.NewString()
	}

	c.trace("HTTP Request", map[string]interface{}{
		"request_id": requestID,
		"method":     method,
		"url":        url,
		"headers":    redactHeaders(headers),
		"body":       string(rawBody),
	})

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, url, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = headers

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		c.trace("HTTP Request Failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})

		return nil, fmt.Errorf("sending request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.trace("HTTP Response", map[string]interface{}{
		"request_id": requestID,
		"status":     httpResp.StatusCode,
		"headers":    httpResp.Header,
		"body":       string(body),
	})

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if datahawk.IsClientOrServerError(resp.StatusCode) {
		return resp, &datahawk.APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	c.cacheStore(ctx, method, url, resp)

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query *datahawk.Query) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

func (c *Client) trace(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func (c *Client) cacheLookup(ctx context.Context, method, url string) *Response {
	if c.cache == nil || method != nethttp.MethodGet {
		return nil
	}

	entry, err := c.cache.Get(ctx, url)
	if err != nil {
		return nil
	}

	return &Response{
		StatusCode: nethttp.StatusOK,
		Body:       entry.Value,
	}
}

func (c *Client) cacheStore(ctx context.Context, method, url string, resp *Response) {
	if c.cache == nil || method != nethttp.MethodGet || resp.StatusCode != nethttp.StatusOK {
		return
	}

	if c.cacheOptions.MaxValueSize > 0 && len(resp.Body) > c.cacheOptions.MaxValueSize {
		return
	}

	_ = c.cache.Set(ctx, url, &datahawk.CacheEntry{
		Value:    resp.Body,
		StoredAt: time.Now(),
		TTL:      c.cacheOptions.TTL,
	})
}

func redactHeaders(headers nethttp.Header) nethttp.Header {
	if headers.Get("Authorization") == "" {
		return headers
	}

	redacted := headers.Clone()
	redacted.Set("Authorization", "Bearer "+constants.MaskedSecret)

	return redacted
}
