package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingQuery returns an increasing value on every call.
type countingQuery struct {
	mu    sync.Mutex
	value int
	errs  []error
}

func (q *countingQuery) query(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.errs) > 0 {
		err := q.errs[0]
		q.errs = q.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	q.value++
	return q.value, nil
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		panic("unreachable")
	}
}

func TestStreamReplaysCurrentValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := &countingQuery{}
	ch, err := Stream(ctx, NewHub(), q.query)
	require.NoError(t, err)

	assert.Equal(t, 1, receive(t, ch), "first emission replays without any notification")
}

func TestStreamEmitsOnNotify(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	q := &countingQuery{}
	ch, err := Stream(ctx, hub, q.query)
	require.NoError(t, err)
	assert.Equal(t, 1, receive(t, ch))

	hub.Notify()
	assert.Equal(t, 2, receive(t, ch))

	hub.Notify()
	assert.Equal(t, 3, receive(t, ch))
}

func TestStreamConflatesWhenConsumerIsSlow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	q := &countingQuery{}
	ch, err := Stream(ctx, hub, q.query)
	require.NoError(t, err)
	assert.Equal(t, 1, receive(t, ch))

	// pile up notifications without consuming.
	for i := 0; i < 5; i++ {
		hub.Notify()
		time.Sleep(10 * time.Millisecond)
	}

	latest := receive(t, ch)
	assert.Greater(t, latest, 1, "a fresh value was emitted")

	// the next consumed value must be newer than the last one, never a
	// stale intermediate that was skipped by conflation.
	hub.Notify()
	assert.Greater(t, receive(t, ch), latest)
}

func TestStreamInitialQueryErrorIsReturned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	boom := errors.New("db down")
	q := &countingQuery{errs: []error{boom}}

	_, err := Stream(ctx, hub, q.query)
	assert.ErrorIs(t, err, boom)
}

func TestStreamSurvivesRequeryError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	q := &countingQuery{errs: []error{nil, errors.New("transient")}}
	ch, err := Stream(ctx, hub, q.query)
	require.NoError(t, err)
	assert.Equal(t, 1, receive(t, ch))

	// this re-query fails and is skipped.
	hub.Notify()

	// give the failed re-query time to happen before notifying again,
	// otherwise the two signals conflate into one.
	time.Sleep(50 * time.Millisecond)
	hub.Notify()
	assert.Equal(t, 2, receive(t, ch), "subscription recovered after the failed re-query")
}

func TestStreamClosesOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub()
	q := &countingQuery{}
	ch, err := Stream(ctx, hub, q.query)
	require.NoError(t, err)
	assert.Equal(t, 1, receive(t, ch))

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel closes on cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancellation")
	}
}

func TestStreamIndependentSubscriptions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	first := &countingQuery{}
	second := &countingQuery{}

	chA, err := Stream(ctx, hub, first.query)
	require.NoError(t, err)
	chB, err := Stream(ctx, hub, second.query)
	require.NoError(t, err)

	assert.Equal(t, 1, receive(t, chA))
	assert.Equal(t, 1, receive(t, chB))

	hub.Notify()
	assert.Equal(t, 2, receive(t, chA), "every subscription sees the notification")
	assert.Equal(t, 2, receive(t, chB), "every subscription sees the notification")
}
