package watch

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Hub fans out write notifications to active subscriptions. Stores signal
// it after every committed write; each subscription re-queries on signal.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan struct{})}
}

// Notify signals every subscription that the underlying data changed. It
// never blocks: signals are conflated per subscription, a subscriber that
// has not consumed the previous signal will re-query once for both.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) subscribe() (chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan struct{}, 1)
	h.subs[id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Stream drives a replay-then-live subscription: it queries and emits the
// current value immediately, then re-queries and re-emits after every hub
// notification. Emissions are conflated when the consumer is slow - the
// stale pending value is replaced by the fresh one. A failed re-query is
// logged and skipped; the subscription stays alive and recovers on the
// next notification. The returned channel closes when ctx is cancelled.
func Stream[T any](ctx context.Context, hub *Hub, query func(context.Context) (T, error)) (<-chan T, error) {
	// subscribe before the replay query so a write landing in between
	// still triggers a re-query.
	signal, unsubscribe := hub.subscribe()

	value, err := query(ctx)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	out := make(chan T, 1)
	go func() {
		defer close(out)
		defer unsubscribe()

		emit(ctx, out, value)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				v, err := query(ctx)
				if err != nil {
					if ctx.Err() == nil {
						log.WithError(err).Warn("watch re-query failed, keeping subscription alive")
					}
					continue
				}
				emit(ctx, out, v)
			}
		}
	}()
	return out, nil
}

// emit delivers v on out, replacing a pending undelivered value. Single
// producer per channel, so the drain-retry loop terminates.
func emit[T any](ctx context.Context, out chan T, v T) {
	for {
		select {
		case out <- v:
			return
		case <-ctx.Done():
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}
