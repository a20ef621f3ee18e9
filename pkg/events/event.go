package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/firetree/pkg/firetree"
)

// Event is the payload published downstream for one document store call.
// The URL is redacted before it leaves the process.
type Event struct {
	ID         string    `json:"id"`
	Op         string    `json:"op"`
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	StatusCode int       `json:"status_code,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	EmittedAt  time.Time `json:"emitted_at"`
}

// NewEvent builds the downstream payload for a completed call.
func NewEvent(rec firetree.OpRecord) Event {
	evt := Event{
		ID:         uuid.NewString(),
		Op:         rec.Op,
		Path:       rec.Path,
		Method:     rec.Method,
		URL:        firetree.RedactURL(rec.URL),
		StatusCode: rec.StatusCode,
		DurationMs: rec.Duration.Milliseconds(),
		EmittedAt:  time.Now().UTC(),
	}
	if rec.Err != nil {
		evt.Error = rec.Err.Error()
	}
	return evt
}
