// Package http provides the HTTP transport used by the PocketBase client.
//
// The transport composes requests (query parameters, JSON or multipart bodies,
// bearer authorization) and returns raw responses. It deliberately does not
// classify HTTP status codes: the record layer maps statuses onto typed errors
// per operation family.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fromhorizons/pocketbase-go/internal/constants"
)

// TokenProvider yields the bearer token for outgoing requests. An empty token
// means the request is sent unauthenticated.
type TokenProvider interface {
	Token() string
}

// Logger is the logging interface used for debug request/response logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TransportError indicates a network-level failure (timeout, connection
// refusal, DNS failure). It is distinct from any HTTP-level response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Request represents an HTTP request to be made.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// RawBody, when set, is sent as-is with ContentType; Body is ignored.
	RawBody     io.Reader
	ContentType string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport for a single PocketBase base URL.
type Client struct {
	baseURL        string
	httpClient     *retryablehttp.Client
	tokens         TokenProvider
	userAgent      string
	logger         Logger
	debug          bool
	httpTimeout    time.Duration
	connectTimeout time.Duration
	custom         *http.Client
}

// Option configures the transport client.
type Option func(*Client)

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for debug logging.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithHTTPTimeout sets the total request timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpTimeout = timeout
	}
}

// WithConnectTimeout sets the dial timeout.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.connectTimeout = timeout
	}
}

// WithRetryConfig enables retries for transient failures. Without this option
// no request is ever retried.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely. Timeout
// options are ignored when set.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.custom = httpClient
	}
}

// NewClient creates a new transport client for the given base URL.
func NewClient(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil

	client := &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     retryClient,
		tokens:         tokens,
		userAgent:      "pocketbase-go",
		httpTimeout:    constants.DefaultHTTPTimeout,
		connectTimeout: constants.DefaultConnectTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.custom != nil {
		retryClient.HTTPClient = client.custom
	} else {
		retryClient.HTTPClient = &http.Client{
			Timeout: client.httpTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: client.connectTimeout,
				}).DialContext,
			},
		}
	}

	return client
}

// BaseURL returns the base URL this transport targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes an HTTP request. HTTP responses of any status code are returned
// to the caller; only network-level failures produce an error (always a
// *TransportError).
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	// The explicit header wins so that operations acting on behalf of another
	// token (auth-refresh-for-user) bypass the session token.
	if httpReq.Header.Get("Authorization") == "" && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    fullURL,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// encodeBody prepares the request body and content type.
func encodeBody(req *Request) (io.Reader, string, error) {
	if req.RawBody != nil {
		return req.RawBody, req.ContentType, nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request body: %w", err)
	}

	return bytes.NewReader(data), "application/json", nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// PostMultipart performs a POST request with a pre-encoded multipart body.
func (c *Client) PostMultipart(ctx context.Context, path, contentType string, body io.Reader) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		RawBody:     body,
		ContentType: contentType,
	})
}
