package events

import (
	"context"
	"errors"
	"testing"
)

type stubSink struct {
	id    string
	typ   string
	err   error
	calls int
	last  Event
}

func (s *stubSink) ID() string   { return s.id }
func (s *stubSink) Type() string { return s.typ }
func (s *stubSink) Send(_ context.Context, evt Event) error {
	s.calls++
	s.last = evt
	return s.err
}

type closableSink struct {
	stubSink
	closed bool
}

func (c *closableSink) Close() error {
	c.closed = true
	return nil
}

func TestFanoutSendAggregatesErrors(t *testing.T) {
	ok := &stubSink{id: "ok", typ: "http"}
	bad := &stubSink{id: "bad", typ: "http", err: errors.New("failed")}
	fanout := NewFanout([]Sink{ok, bad})

	count, err := fanout.Send(context.Background(), Event{Op: "get"})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("expected both sinks called, got %d and %d", ok.calls, bad.calls)
	}
}

func TestFanoutCloseReleasesClosableSinks(t *testing.T) {
	closable := &closableSink{stubSink: stubSink{id: "c", typ: "pubsub"}}
	plain := &stubSink{id: "p", typ: "http"}
	fanout := NewFanout([]Sink{closable, plain})

	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closable.closed {
		t.Fatalf("expected closable sink to be closed")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	sinks, err := BuildAll(context.Background(), reg, []SinkConfig{
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPSinkConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(sinks) != 1 {
		t.Fatalf("expected 1 sink, got %d", len(sinks))
	}
	if sinks[0].Type() != TypeHTTP {
		t.Fatalf("unexpected sink type: %s", sinks[0].Type())
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	reg := DefaultRegistry()
	if _, err := BuildAll(context.Background(), reg, []SinkConfig{
		{ID: "x", Type: "carrier-pigeon"},
	}, nil); err == nil {
		t.Fatalf("expected error for unknown sink type")
	}
}
