package events

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/firetree/pkg/firetree"
)

func TestNewEventRedactsToken(t *testing.T) {
	evt := NewEvent(firetree.OpRecord{
		Op:         "set",
		Path:       "users/jack",
		Method:     "PUT",
		URL:        "https://store.example/users/jack.json?auth=s3cr3t",
		StatusCode: 200,
		Duration:   1500 * time.Microsecond,
	})

	if evt.ID == "" {
		t.Fatalf("expected generated event id")
	}
	if strings.Contains(evt.URL, "s3cr3t") {
		t.Fatalf("token leaked into event URL: %s", evt.URL)
	}
	if !strings.Contains(evt.URL, "auth=REDACTED") {
		t.Fatalf("expected redacted auth in %s", evt.URL)
	}
	if evt.Op != "set" || evt.Method != "PUT" || evt.StatusCode != 200 {
		t.Fatalf("unexpected event fields: %+v", evt)
	}
	if evt.DurationMs != 1 {
		t.Fatalf("unexpected duration: %d", evt.DurationMs)
	}
	if evt.EmittedAt.IsZero() {
		t.Fatalf("expected emitted_at to be set")
	}
}

func TestNewEventCarriesError(t *testing.T) {
	evt := NewEvent(firetree.OpRecord{
		Op:  "get",
		Err: errors.New("connection refused"),
	})
	if evt.Error != "connection refused" {
		t.Fatalf("unexpected error field: %q", evt.Error)
	}
	if evt.StatusCode != 0 {
		t.Fatalf("expected zero status for failed call, got %d", evt.StatusCode)
	}
}

func TestObserverForwardsRecords(t *testing.T) {
	sink := &stubSink{id: "s", typ: "http"}
	fanout := NewFanout([]Sink{sink})

	obs := Observer(fanout, nil)
	obs(firetree.OpRecord{
		Op:         "push",
		Path:       "queue",
		Method:     "POST",
		URL:        "https://store.example/queue.json?auth=tok",
		StatusCode: 200,
	})

	if sink.calls != 1 {
		t.Fatalf("expected 1 delivery, got %d", sink.calls)
	}
	if sink.last.Op != "push" || sink.last.Path != "queue" {
		t.Fatalf("unexpected delivered event: %+v", sink.last)
	}
	if strings.Contains(sink.last.URL, "tok") {
		t.Fatalf("token leaked into delivered event: %s", sink.last.URL)
	}
}
