package pocketbase

import (
	"net/http"
	"strings"
	"sync"
	"time"

	pbhttp "github.com/fromhorizons/pocketbase-go/internal/http"
)

// Logger is the logging interface accepted by the client. It matches the
// transport's logger so any structured logger can be adapted.
type Logger = pbhttp.Logger

// Config holds the client configuration.
type Config struct {
	// BaseURL is the PocketBase server address, e.g. "https://pb.example.com".
	// A trailing slash is stripped.
	BaseURL string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Token resumes an existing session. The record part of the auth store
	// stays empty until the next AuthRefresh.
	Token string

	// HTTPTimeout is the total request timeout. Zero means the default.
	HTTPTimeout time.Duration

	// ConnectTimeout is the dial timeout. Zero means the default.
	ConnectTimeout time.Duration

	// RetryMax enables retries for transient failures when positive. By
	// default no request is retried.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Logger receives debug request/response logs when Debug is set.
	Logger Logger
	Debug  bool

	// HTTPClient replaces the underlying HTTP client entirely. Timeout fields
	// are ignored when set.
	HTTPClient *http.Client
}

// Client is a PocketBase API client bound to one server. It is safe for
// concurrent use; the session auth store is guarded internally.
type Client struct {
	baseURL string
	http    *pbhttp.Client

	mu   sync.RWMutex
	auth *AuthStore
}

// sessionTokens adapts the client's session store to the transport's
// TokenProvider.
type sessionTokens struct {
	client *Client
}

func (s *sessionTokens) Token() string {
	return s.client.Token()
}

// New creates a client for the given base URL with default configuration.
func New(baseURL string) (*Client, error) {
	return NewWithConfig(&Config{BaseURL: baseURL})
}

// NewWithConfig creates a client from a full configuration.
func NewWithConfig(config *Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, ErrInvalidBaseURL
	}

	client := &Client{baseURL: baseURL}

	if config.Token != "" {
		client.auth = &AuthStore{Token: config.Token}
	}

	options := []pbhttp.Option{}

	if config.UserAgent != "" {
		options = append(options, pbhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		options = append(options, pbhttp.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.ConnectTimeout > 0 {
		options = append(options, pbhttp.WithConnectTimeout(config.ConnectTimeout))
	}

	if config.RetryMax > 0 {
		options = append(options, pbhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.Logger != nil {
		options = append(options, pbhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		options = append(options, pbhttp.WithDebug(true))
	}

	if config.HTTPClient != nil {
		options = append(options, pbhttp.WithHTTPClient(config.HTTPClient))
	}

	client.http = pbhttp.NewClient(baseURL, &sessionTokens{client: client}, options...)

	return client, nil
}

// BaseURL returns the server address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the current session token, or "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.auth == nil {
		return ""
	}

	return c.auth.Token
}

// AuthStore returns a copy of the current session, or nil when
// unauthenticated.
func (c *Client) AuthStore() *AuthStore {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.auth == nil {
		return nil
	}

	store := *c.auth

	return &store
}

// updateAuthStore installs a new session. Subsequent requests carry its token.
func (c *Client) updateAuthStore(store *AuthStore) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.auth = store
}
