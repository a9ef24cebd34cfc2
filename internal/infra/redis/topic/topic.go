package infra_redis_topic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/metrics"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/oklog/ulid/v2"
)

// publishScript assigns the room sequence and appends to the stream atomically,
// so stream order and Seq order agree across processes.
var publishScript = redis.NewScript(`
local seq = redis.call('INCR', KEYS[1])
redis.call('XADD', KEYS[2], '*', 'seq', tostring(seq), 'event', ARGV[1])
return seq
`)

const (
	fieldSeq    = "seq"
	fieldEvent  = "event"
	fieldClosed = "closed"
)

// Driver is a per-room topic on Redis Streams. Every subscriber reads the whole
// stream from its attach point, so nobody is cut off for lagging.
type Driver struct {
	client    *redis.Client
	prefix    string
	poll      time.Duration
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Driver)

// WithPoll bounds a single blocking XREAD. Cancellation is noticed between reads.
func WithPoll(d time.Duration) Option {
	return func(dr *Driver) {
		dr.poll = d
	}
}

// WithRetention sets how long a closed topic stays readable.
func WithRetention(d time.Duration) Option {
	return func(dr *Driver) {
		dr.retention = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(dr *Driver) {
		dr.now = now
	}
}

func New(
	client *redis.Client,
	prefix string,
	opts ...Option,
) *Driver {
	d := &Driver{
		client:    client,
		prefix:    prefix,
		poll:      time.Second,
		retention: time.Hour,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) seqKey(roomID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:seq", d.prefix, roomID)
}

func (d *Driver) streamKey(roomID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:events", d.prefix, roomID)
}

func (d *Driver) Publish(_ context.Context, roomID uuid.UUID, e model.Event) (model.Event, error) {
	e.RoomID = roomID
	e.ID = ulid.Make().String()
	e.OccurredAt = d.now()
	e.Seq = 0

	raw, err := json.Marshal(e)
	if err != nil {
		return model.Event{}, fmt.Errorf("encode event: %w", err)
	}

	res, err := publishScript.Run(d.client, []string{d.seqKey(roomID), d.streamKey(roomID)}, string(raw)).Result()
	if err != nil {
		return model.Event{}, fmt.Errorf("publish event: %w", err)
	}
	seq, ok := res.(int64)
	if !ok {
		return model.Event{}, fmt.Errorf("publish event: unexpected reply %T", res)
	}

	e.Seq = uint64(seq)
	metrics.EventsPublished.WithLabelValues(string(e.Type)).Inc()
	return e, nil
}

// Subscribe attaches after the newest stream entry.
func (d *Driver) Subscribe(_ context.Context, roomID uuid.UUID) (model.Subscription, error) {
	last, err := d.client.XRevRangeN(d.streamKey(roomID), "+", "-", 1).Result()
	if err != nil {
		return nil, fmt.Errorf("read stream tail: %w", err)
	}

	cursor := "0-0"
	if len(last) > 0 {
		if _, closed := last[0].Values[fieldClosed]; closed {
			return nil, model.ErrTopicClosed
		}
		cursor = last[0].ID
	}

	metrics.Subscribers.Inc()
	return &Subscription{
		driver: d,
		stream: d.streamKey(roomID),
		cursor: cursor,
	}, nil
}

func (d *Driver) LastSeq(_ context.Context, roomID uuid.UUID) (uint64, error) {
	seq, err := d.client.Get(d.seqKey(roomID)).Uint64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("read seq: %w", err)
	}
	return seq, nil
}

// CloseTopic appends a terminal marker and lets the keys expire.
func (d *Driver) CloseTopic(_ context.Context, roomID uuid.UUID) error {
	stream := d.streamKey(roomID)

	err := d.client.XAdd(&redis.XAddArgs{
		Stream: stream,
		ID:     "*",
		Values: map[string]interface{}{fieldClosed: "1"},
	}).Err()
	if err != nil {
		return fmt.Errorf("close topic: %w", err)
	}

	for _, key := range []string{stream, d.seqKey(roomID)} {
		if err := d.client.Expire(key, d.retention).Err(); err != nil {
			d.logger.Warn("failed to set topic retention", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return nil
}

// DropTopic deletes the room's stream and sequence right away.
func (d *Driver) DropTopic(_ context.Context, roomID uuid.UUID) error {
	if err := d.client.Del(d.streamKey(roomID), d.seqKey(roomID)).Err(); err != nil {
		return fmt.Errorf("drop topic: %w", err)
	}
	return nil
}

type Subscription struct {
	driver *Driver
	stream string

	closed atomic.Bool

	mu      sync.Mutex
	cursor  string
	pending []redis.XMessage
}

func (s *Subscription) Next(ctx context.Context) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if s.closed.Load() {
			return model.Event{}, model.ErrTopicClosed
		}

		for len(s.pending) > 0 {
			msg := s.pending[0]
			s.pending = s.pending[1:]
			s.cursor = msg.ID

			if _, closed := msg.Values[fieldClosed]; closed {
				s.detach()
				return model.Event{}, model.ErrTopicClosed
			}

			e, err := decode(msg)
			if err != nil {
				s.driver.logger.Error("skipping undecodable event",
					slog.String("stream", s.stream),
					slog.String("id", msg.ID),
					slog.String("error", err.Error()))
				continue
			}
			return e, nil
		}

		if err := ctx.Err(); err != nil {
			return model.Event{}, err
		}

		streams, err := s.driver.client.XRead(&redis.XReadArgs{
			Streams: []string{s.stream, s.cursor},
			Count:   64,
			Block:   s.driver.poll,
		}).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return model.Event{}, fmt.Errorf("read stream: %w", err)
		}
		for _, stream := range streams {
			s.pending = append(s.pending, stream.Messages...)
		}
	}
}

// Close detaches the subscriber; the stream is untouched. A Next blocked in
// XREAD returns within one poll interval.
func (s *Subscription) Close() error {
	s.detach()
	return nil
}

func (s *Subscription) detach() {
	if s.closed.CompareAndSwap(false, true) {
		metrics.Subscribers.Dec()
	}
}

func decode(msg redis.XMessage) (model.Event, error) {
	raw, ok := msg.Values[fieldEvent].(string)
	if !ok {
		return model.Event{}, errors.New("missing event payload")
	}

	var e model.Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return model.Event{}, err
	}

	seq, err := strconv.ParseUint(fmt.Sprint(msg.Values[fieldSeq]), 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("bad seq: %w", err)
	}
	e.Seq = seq
	return e, nil
}
