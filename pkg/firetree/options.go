package firetree

// This file defines the functional options accepted by New. Keeping them in
// a standalone file makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during New.
type Option func(*Client) error

// WithToken sets the auth token appended to every request's query string.
// An empty token disables auth injection.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token = token
		return nil
	}
}

// WithTimeout sets both the connection and total request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return &ConfigError{Reason: fmt.Sprintf("timeout must be positive, got %v", d)}
		}
		c.timeout = d
		return nil
	}
}

// WithLogger wires a logger into the client. The default discards all output.
func WithLogger(log Logger) Option {
	return func(c *Client) error {
		c.log = ensureLogger(log)
		return nil
	}
}

// WithInsecureTLS disables TLS certificate verification for this client.
// Intended for self-hosted stores with self-signed certificates; leave off
// everywhere else.
func WithInsecureTLS() Option {
	return func(c *Client) error {
		c.insecureTLS = true
		return nil
	}
}

// WithObserver registers a callback invoked after every completed call,
// success and failure alike. Observers run synchronously on the calling
// goroutine; keep them cheap or hand off to your own machinery.
func WithObserver(obs Observer) Option {
	return func(c *Client) error {
		if obs != nil {
			c.observers = append(c.observers, obs)
		}
		return nil
	}
}

// WithHTTPTransport overrides the underlying round tripper. Mostly useful
// for tests that intercept requests; when set, the connection-timeout side
// of SetTimeout no longer applies (the transport owns its own dialing).
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		c.transport = rt
		return nil
	}
}
