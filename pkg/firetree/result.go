package firetree

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Result carries everything a single round trip produced. Server-reported
// errors (non-2xx statuses) arrive here with the body exactly as received;
// callers inspect StatusCode or IsError to tell them apart from success.
type Result struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Header holds the parsed response headers.
	Header http.Header
	// RawHeader is the response status line plus header block rendered the
	// way it appeared on the wire. Empty when the transport reported no
	// header metadata, in which case the whole payload lives in Body.
	RawHeader string
	// Body is the raw response body. The document store answers every
	// operation with a JSON value; Decode interprets it on demand.
	Body []byte
}

// IsError reports whether the server answered with a non-2xx status.
func (r *Result) IsError() bool {
	if r == nil {
		return false
	}
	return r.StatusCode >= http.StatusBadRequest
}

// String returns the body as a string.
func (r *Result) String() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// Decode unmarshals the body into v.
func (r *Result) Decode(v any) error {
	if r == nil {
		return fmt.Errorf("firetree: decode on nil result")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("firetree: decode response body: %w", err)
	}
	return nil
}

// newResult captures the response into a Result, cloning the header map so
// the caller owns it outright.
func newResult(resp *resty.Response) *Result {
	return &Result{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header().Clone(),
		RawHeader:  renderHeaderBlock(resp),
		Body:       resp.Body(),
	}
}

// renderHeaderBlock reconstructs the status line and header block of the
// response. The HTTP transport has already split headers from body; this
// re-renders the header side for callers that want the raw block.
func renderHeaderBlock(resp *resty.Response) string {
	raw := resp.RawResponse
	if raw == nil || len(resp.Header()) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\r\n", resp.Proto(), resp.Status())
	// http.Header.Write emits canonical "Key: value" lines in sorted order.
	if err := resp.Header().Write(&b); err != nil {
		return ""
	}
	b.WriteString("\r\n")
	return b.String()
}
