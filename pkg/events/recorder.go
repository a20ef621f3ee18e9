package events

import (
	"context"

	"github.com/samvad-hq/firetree/pkg/firetree"
)

// Observer bridges client call records into the sink fanout. Delivery is
// synchronous with the observed call; slow sinks slow the caller down.
func Observer(f *Fanout, log Logger) firetree.Observer {
	log = ensureLogger(log)
	return func(rec firetree.OpRecord) {
		if f == nil || f.Size() == 0 {
			return
		}
		evt := NewEvent(rec)
		if _, err := f.Send(context.Background(), evt); err != nil {
			log.WarnObj("event delivery incomplete", "event_fanout_error", map[string]any{
				"event_id": evt.ID,
				"op":       evt.Op,
				"error":    err.Error(),
			})
		}
	}
}
