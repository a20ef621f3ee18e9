package firetree

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// ErrClosed is returned by every operation attempted after Close.
var ErrClosed = errors.New("firetree: client is closed")

// ConfigError reports an unusable client configuration. It aborts
// construction rather than surfacing later as a failed request.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("firetree: invalid configuration: %s", e.Reason)
}

// SerializationError wraps a JSON encoding failure for write data. The write
// is never issued when the payload cannot be encoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("firetree: encode request body: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransportError wraps any failure below the HTTP semantics layer: connection
// refused, DNS, TLS, timeout, or a malformed response. The remote store never
// saw (or never answered) the request; a non-2xx status is NOT a
// TransportError and is returned as a normal Result instead.
type TransportError struct {
	Op      string
	Method  string
	URL     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Timeout {
		return fmt.Sprintf("firetree: %s %s timed out: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("firetree: %s %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// isTimeout reports whether err represents an expired deadline at any layer.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
