package firetree

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultTimeout applies to both connection establishment and the total
	// request duration when no other timeout is configured.
	DefaultTimeout = 10 * time.Second

	jsonSuffix     = ".json"
	authParam      = "auth"
	decodingHeader = "X-Firebase-Decoding"

	headerContentType   = "Content-Type"
	headerContentLength = "Content-Length"
	contentTypeJSON     = "application/json"

	maxRedirects = 10
)

// OpRecord describes one completed call, successful or not.
type OpRecord struct {
	Op         string
	Path       string
	Method     string
	URL        string
	StatusCode int
	Duration   time.Duration
	Err        error
}

// Observer receives an OpRecord after every call.
type Observer func(OpRecord)

// Client talks to a remote JSON document tree over its REST surface. Each
// operation is one blocking HTTP round trip on a transport handle created at
// construction and reused for every call, so persistent connections are kept
// warm across operations.
//
// A Client is not safe for concurrent use: the transport handle and the
// last-response headers are mutated by every call. Use one Client per
// goroutine, or serialize access externally.
type Client struct {
	baseURI     string
	token       string
	timeout     time.Duration
	insecureTLS bool

	rest      *resty.Client
	dialer    *net.Dialer
	transport http.RoundTripper

	log         Logger
	observers   []Observer
	lastHeaders string
	closed      bool
}

// New constructs a Client for the document tree rooted at baseURI. The base
// URI is required; everything else has defaults overridable via options.
func New(baseURI string, opts ...Option) (*Client, error) {
	c := &Client{
		timeout: DefaultTimeout,
		log:     noopLogger{},
	}
	if err := c.SetBaseURI(baseURI); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.initTransport()
	return c, nil
}

// initTransport builds the reusable resty handle. Called exactly once, from
// New; the handle is never recreated between calls.
func (c *Client) initTransport() {
	c.dialer = &net.Dialer{Timeout: c.timeout}

	rest := resty.New()
	if c.transport != nil {
		rest.SetTransport(c.transport)
	} else {
		rest.SetTransport(&http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         c.dialer.DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
		})
	}
	rest.SetTimeout(c.timeout)
	rest.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	if c.insecureTLS {
		rest.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // opt-in via WithInsecureTLS
	}
	c.rest = rest
}

// SetBaseURI replaces the base URI, normalizing it to end with exactly one
// trailing slash. Affects subsequent calls only.
func (c *Client) SetBaseURI(uri string) error {
	normalized, err := normalizeBaseURI(uri)
	if err != nil {
		return err
	}
	c.baseURI = normalized
	return nil
}

// SetToken replaces the auth token. An empty token disables auth injection
// on subsequent calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetTimeout sets both the connection and total request timeout for
// subsequent calls. In-flight calls keep the timeout they started with.
func (c *Client) SetTimeout(d time.Duration) error {
	if d <= 0 {
		return &ConfigError{Reason: "timeout must be positive"}
	}
	c.timeout = d
	if c.dialer != nil {
		c.dialer.Timeout = d
	}
	if c.rest != nil {
		c.rest.SetTimeout(d)
	}
	return nil
}

// BaseURI returns the normalized base URI.
func (c *Client) BaseURI() string {
	return c.baseURI
}

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// LastResponseHeaders returns the raw header block of the most recent call
// on this client, successful or not; a transport failure leaves it empty.
// Prefer the per-call Result, which carries the same data without shared
// state.
func (c *Client) LastResponseHeaders() string {
	return c.lastHeaders
}

// Close releases idle transport connections. The client is unusable
// afterwards; calling Close again is a no-op. Close is best-effort — the
// operating system reclaims the handle at process exit regardless.
func (c *Client) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	if c.rest != nil {
		c.rest.GetClient().CloseIdleConnections()
	}
	return nil
}

// Get reads the document at path.
func (c *Client) Get(ctx context.Context, path string, opts ...CallOption) (*Result, error) {
	return c.call(ctx, "get", http.MethodGet, path, nil, opts)
}

// Set overwrites the document at path with data.
func (c *Client) Set(ctx context.Context, path string, data any, opts ...CallOption) (*Result, error) {
	return c.write(ctx, "set", http.MethodPut, path, data, opts)
}

// Push appends data under path as a new child with a server-assigned key.
// The response body names the generated key.
func (c *Client) Push(ctx context.Context, path string, data any, opts ...CallOption) (*Result, error) {
	return c.write(ctx, "push", http.MethodPost, path, data, opts)
}

// Update merges data into the document at path, leaving unnamed children
// untouched.
func (c *Client) Update(ctx context.Context, path string, data any, opts ...CallOption) (*Result, error) {
	return c.write(ctx, "update", http.MethodPatch, path, data, opts)
}

// Remove deletes the document at path.
func (c *Client) Remove(ctx context.Context, path string, opts ...CallOption) (*Result, error) {
	return c.call(ctx, "remove", http.MethodDelete, path, nil, opts)
}

// write serializes data and hands off to call. All three write verbs share
// this path; only the HTTP method differs.
func (c *Client) write(ctx context.Context, op, method, path string, data any, opts []CallOption) (*Result, error) {
	payload, err := jsonMarshal(data)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return c.call(ctx, op, method, path, payload, opts)
}

// call performs one round trip: build the target URL, attach headers, issue
// the request, capture the response. body is nil for bodyless verbs; note a
// serialized JSON null is a non-nil payload and still gets sent.
func (c *Client) call(ctx context.Context, op, method, path string, body []byte, opts []CallOption) (*Result, error) {
	if c == nil || c.rest == nil {
		return nil, &ConfigError{Reason: "client is not initialized"}
	}
	if c.closed {
		return nil, ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}

	co := applyCallOptions(opts)
	target := c.endpointURL(path, co.query)

	req := c.rest.R().SetContext(ctx)
	if len(co.header) > 0 {
		req.SetHeaders(co.header)
	}
	// The decoding marker goes on every request and cannot be overridden.
	req.SetHeader(decodingHeader, "1")
	if body != nil {
		if req.Header.Get(headerContentType) == "" {
			req.SetHeader(headerContentType, contentTypeJSON)
		}
		// Content-Length is computed from the payload by the transport;
		// caller-supplied values are dropped rather than trusted.
		req.Header.Del(headerContentLength)
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, target)
	elapsed := time.Since(start)

	if err != nil {
		c.lastHeaders = ""
		terr := &TransportError{Op: op, Method: method, URL: target, Timeout: isTimeout(err), Err: err}
		c.log.WarnObj("document store call failed", "call", map[string]any{
			"op":         op,
			"method":     method,
			"url":        RedactURL(target),
			"elapsed_ms": elapsed.Milliseconds(),
			"error":      err.Error(),
		})
		c.notify(OpRecord{Op: op, Path: path, Method: method, URL: target, Duration: elapsed, Err: terr})
		return nil, terr
	}

	res := newResult(resp)
	c.lastHeaders = res.RawHeader
	c.log.DebugObj("document store call completed", "call", map[string]any{
		"op":         op,
		"method":     method,
		"url":        RedactURL(target),
		"status":     res.StatusCode,
		"elapsed_ms": elapsed.Milliseconds(),
	})
	c.notify(OpRecord{Op: op, Path: path, Method: method, URL: target, StatusCode: res.StatusCode, Duration: elapsed})
	return res, nil
}

func (c *Client) notify(rec OpRecord) {
	for _, obs := range c.observers {
		obs(rec)
	}
}

// jsonMarshal encodes v without HTML escaping or the encoder's trailing
// newline, so the payload length matches what goes on the wire.
func jsonMarshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
