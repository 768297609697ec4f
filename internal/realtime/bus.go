package realtime

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/metrics"
)

const DefaultBuffer = 64

var (
	// ErrSlowConsumer ends a subscription whose buffer filled up. Resubscribe and refetch to recover.
	ErrSlowConsumer = errors.New("realtime: subscriber fell behind")
	ErrClosed       = errors.New("realtime: bus closed")
)

// Publisher accepts committed changes.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Bus fans change events out to per-table subscriptions.
type Bus interface {
	Publisher
	// Subscribe streams events for table that pass filter until ctx is done or the
	// subscription is closed. Events arrive in publish order; a subscription is never
	// silently skipped ahead, it is ended with ErrSlowConsumer instead.
	Subscribe(ctx context.Context, table string, filter Filter) (*Subscription, error)
	Close() error
}

// Subscription is a live feed for one table.
type Subscription struct {
	Table  string
	Filter Filter

	events   chan Event
	stop     chan struct{}
	stopOnce sync.Once

	mu  sync.Mutex
	err error
}

func newSubscription(table string, filter Filter, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Subscription{
		Table:  table,
		Filter: filter,
		events: make(chan Event, buffer),
		stop:   make(chan struct{}),
	}
}

// Events is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// All yields events until the subscription ends or the loop breaks, which closes it.
func (s *Subscription) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for ev := range s.events {
			if !yield(ev) {
				s.Close()
				return
			}
		}
	}
}

// Err reports why the subscription ended; nil after a normal Close or cancellation.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

func (s *Subscription) offer(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	default:
		return false
	}
}

// MemoryBus is the in-process Bus used by a single instance and in tests.
type MemoryBus struct {
	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	buffer  int
	closed  bool
	metrics *metrics.Metrics
}

func NewMemoryBus(buffer int, m *metrics.Metrics) *MemoryBus {
	return &MemoryBus{
		subs:    make(map[*Subscription]struct{}),
		buffer:  buffer,
		metrics: m,
	}
}

func (b *MemoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.metrics.EventPublished(ev.Table, string(ev.Type))
	for sub := range b.subs {
		if sub.Table != ev.Table || !sub.Filter.Match(ev) {
			continue
		}
		if !sub.offer(ev) {
			b.dropLocked(sub, ErrSlowConsumer)
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, table string, filter Filter) (*Subscription, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	sub := newSubscription(table, filter, b.buffer)
	b.subs[sub] = struct{}{}
	b.metrics.SubscriberOpened()
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-sub.stop:
		}
		b.mu.Lock()
		b.dropLocked(sub, nil)
		b.mu.Unlock()
	}()
	return sub, nil
}

// Subscribers counts open subscriptions.
func (b *MemoryBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for sub := range b.subs {
		b.dropLocked(sub, ErrClosed)
	}
	return nil
}

// dropLocked must be called with b.mu held; it is the only place events channels are closed.
func (b *MemoryBus) dropLocked(sub *Subscription, err error) {
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	if err != nil {
		sub.setErr(err)
	}
	close(sub.events)
	sub.Close()
	b.metrics.SubscriberClosed(errors.Is(err, ErrSlowConsumer))
}

// Notify publishes a change that has already been committed. Failures are logged and
// never reported to the caller. A nil publisher is a no-op.
func Notify(ctx context.Context, pub Publisher, log *logging.Logger, eventType EventType, table string, newRow, oldRow interface{}) {
	if pub == nil {
		return
	}
	ev, err := NewEvent(eventType, table, newRow, oldRow)
	if err == nil {
		err = pub.Publish(ctx, ev)
	}
	if err != nil && log != nil {
		log.WithContext(ctx).WithError(err).Warn("realtime publish failed", "table", table, "type", string(eventType))
	}
}
