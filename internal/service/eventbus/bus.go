package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/metrics"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/oklog/ulid/v2"
)

const defaultBuffer = 256

// Bus is the in-process realtime channel. Each room owns a topic with its own
// sequence counter; publishing never blocks on slow subscribers.
type Bus struct {
	mu     sync.Mutex
	topics map[uuid.UUID]*topic

	buffer int
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Bus)

func WithBuffer(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.buffer = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *Bus) {
		b.now = now
	}
}

func New(opts ...Option) *Bus {
	b := &Bus{
		topics: make(map[uuid.UUID]*topic),
		buffer: defaultBuffer,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// topic outlives CloseTopic so the sequence keeps counting until DropTopic.
type topic struct {
	mu     sync.Mutex
	seq    uint64
	closed bool
	subs   map[*Subscription]struct{}
}

func (b *Bus) topic(roomID uuid.UUID) *topic {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[roomID]
	if !ok {
		t = &topic{subs: make(map[*Subscription]struct{})}
		b.topics[roomID] = t
	}
	return t
}

// Publish stamps the event with the next room sequence number and a ULID and
// queues it for every current subscriber in FIFO order.
func (b *Bus) Publish(_ context.Context, roomID uuid.UUID, e model.Event) (model.Event, error) {
	t := b.topic(roomID)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	e.Seq = t.seq
	e.RoomID = roomID
	e.ID = ulid.Make().String()
	if e.OccurredAt.IsZero() {
		e.OccurredAt = b.now()
	}

	for sub := range t.subs {
		if !sub.push(e, b.buffer) {
			delete(t.subs, sub)
			metrics.SubscribersDropped.Inc()
			metrics.Subscribers.Dec()
			b.logger.Warn("subscriber lagged, dropped",
				slog.String("room_id", roomID.String()),
				slog.Uint64("seq", e.Seq))
		}
	}
	metrics.EventsPublished.WithLabelValues(string(e.Type)).Inc()

	return e, nil
}

// Subscribe attaches a new subscriber that sees every event published after this call.
func (b *Bus) Subscribe(_ context.Context, roomID uuid.UUID) (model.Subscription, error) {
	t := b.topic(roomID)
	sub := &Subscription{
		topic: t,
		wake:  make(chan struct{}, 1),
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, model.ErrTopicClosed
	}
	t.subs[sub] = struct{}{}
	t.mu.Unlock()
	metrics.Subscribers.Inc()

	return sub, nil
}

// LastSeq returns the sequence number of the last event published to the room.
func (b *Bus) LastSeq(_ context.Context, roomID uuid.UUID) (uint64, error) {
	b.mu.Lock()
	t, ok := b.topics[roomID]
	b.mu.Unlock()
	if !ok {
		return 0, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq, nil
}

// CloseTopic ends every subscription of the room once its queue is drained.
// The topic keeps its sequence number and refuses new subscribers.
func (b *Bus) CloseTopic(_ context.Context, roomID uuid.UUID) error {
	t := b.topic(roomID)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.detachAll()
	return nil
}

// DropTopic forgets the room entirely. A later publish starts a fresh sequence.
func (b *Bus) DropTopic(_ context.Context, roomID uuid.UUID) error {
	b.mu.Lock()
	t, ok := b.topics[roomID]
	delete(b.topics, roomID)
	b.mu.Unlock()
	if !ok {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.detachAll()
	return nil
}

// detachAll is called with the topic lock held.
func (t *topic) detachAll() {
	for sub := range t.subs {
		sub.end(model.ErrTopicClosed)
		delete(t.subs, sub)
		metrics.Subscribers.Dec()
	}
}

type Subscription struct {
	topic *topic
	wake  chan struct{}

	mu    sync.Mutex
	queue []model.Event
	err   error
}

// push is called with the topic lock held. It reports false when the subscriber overflowed.
func (s *Subscription) push(e model.Event, limit int) bool {
	s.mu.Lock()
	if s.err != nil {
		s.mu.Unlock()
		return false
	}
	if len(s.queue) >= limit {
		s.queue = nil
		s.err = model.ErrSubscriberLagged
		s.mu.Unlock()
		s.signal()
		return false
	}
	s.queue = append(s.queue, e)
	s.mu.Unlock()

	s.signal()
	return true
}

func (s *Subscription) end(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.signal()
}

func (s *Subscription) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) Next(ctx context.Context) (model.Event, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			e := s.queue[0]
			s.queue[0] = model.Event{}
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return e, nil
		}
		if s.err != nil {
			err := s.err
			s.mu.Unlock()
			return model.Event{}, err
		}
		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-ctx.Done():
			return model.Event{}, ctx.Err()
		}
	}
}

// Close detaches the subscriber. Server state is untouched.
func (s *Subscription) Close() error {
	s.topic.mu.Lock()
	_, attached := s.topic.subs[s]
	delete(s.topic.subs, s)
	s.topic.mu.Unlock()
	if attached {
		metrics.Subscribers.Dec()
	}

	s.end(model.ErrTopicClosed)
	return nil
}
