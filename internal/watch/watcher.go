package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/samvad-hq/firetree/internal/logger"
	"github.com/samvad-hq/firetree/pkg/firetree"
)

// Package watch polls documents for changes. The REST surface has no
// native change feed, so revisions are detected by comparing body hashes
// between polls.

// Getter is the slice of the document client the watcher needs.
type Getter interface {
	Get(ctx context.Context, path string, opts ...firetree.CallOption) (*firetree.Result, error)
}

// Change describes one observed document revision.
type Change struct {
	Path       string
	Hash       string
	Bytes      int
	StatusCode int
	Body       []byte
	ObservedAt time.Time
	First      bool
}

// Watcher polls one document path on a fixed interval and invokes the
// change callback whenever the body differs from the previous poll.
type Watcher struct {
	client   Getter
	path     string
	interval time.Duration
	onChange func(Change)
	lastHash string
}

// New builds a watcher. The callback may be nil when only logging is wanted.
func New(client Getter, path string, interval time.Duration, onChange func(Change)) (*Watcher, error) {
	if client == nil {
		return nil, fmt.Errorf("watcher requires a client")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("watch interval must be positive")
	}

	return &Watcher{
		client:   client,
		path:     path,
		interval: interval,
		onChange: onChange,
	}, nil
}

// Run polls until the context is cancelled. Poll failures after the first
// are logged and retried on the next tick; cancellation is not an error.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.client == nil {
		return fmt.Errorf("watcher is not initialized")
	}

	logger.InfoObj("watch loop starting", "watch_state", map[string]any{
		"path":     w.path,
		"interval": w.interval.String(),
	})

	if err := w.pollOnce(ctx, true); err != nil {
		return fmt.Errorf("initial poll: %w", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoObj("watch loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := w.pollOnce(ctx, false); err != nil {
				logger.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

func (w *Watcher) pollOnce(ctx context.Context, first bool) error {
	res, err := w.client.Get(ctx, w.path)
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("server returned status %d", res.StatusCode)
	}

	sum := sha256.Sum256(res.Body)
	hash := hex.EncodeToString(sum[:])
	if hash == w.lastHash {
		return nil
	}
	w.lastHash = hash

	logger.InfoObj("document changed", "watch_change", map[string]any{
		"path":  w.path,
		"bytes": len(res.Body),
		"first": first,
	})

	if w.onChange != nil {
		w.onChange(Change{
			Path:       w.path,
			Hash:       hash,
			Bytes:      len(res.Body),
			StatusCode: res.StatusCode,
			Body:       res.Body,
			ObservedAt: time.Now().UTC(),
			First:      first,
		})
	}
	return nil
}
