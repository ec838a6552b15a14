package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token func() string
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithJar replaces the default in-memory cookie jar.
func WithJar(jar http.CookieJar) Option {
	return func(c *HTTPClient) { c.http.Jar = jar }
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar},
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was built for.
func (c *HTTPClient) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// SetTokenSource installs the provider of the bearer token. An empty token
// means the request goes out without an Authorization header.
func (c *HTTPClient) SetTokenSource(fn func() string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = fn
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return ""
	}
	return c.token()
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// response is a fully read API answer.
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// text is the body as http.Error writes it, without the trailing newline.
func (r *response) text() string {
	return strings.TrimSpace(string(r.body))
}

func (r *response) decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in any) (*response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api call failed", "request_id", requestID, "method", method, "path", path, "err", err)
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api call",
		"request_id", requestID, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	return &response{status: resp.StatusCode, body: data}, nil
}

// statusError maps a failed response to an APIError carrying message.
func statusError(r *response, message string) *APIError {
	e := &APIError{Status: r.status, Message: message}
	switch r.status {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.Err = ErrUnauthorized
	case http.StatusNotFound:
		e.Err = ErrNotFound
	}
	return e
}

// Ping reports whether the API answers at all; any HTTP status counts.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodHead, "/", nil)
	return err
}
