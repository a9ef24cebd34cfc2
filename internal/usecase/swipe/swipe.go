package usecase_swipe

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/metrics"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/humanbelnik/kinoswap/matchroom/internal/pkg/keylock"
)

//go:generate mockery --name=RoomReader --output=./mocks/swipe/rooms --filename=rooms.go
type RoomReader interface {
	RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error)
}

//go:generate mockery --name=SwipeRepository --output=./mocks/swipe/repository --filename=repository.go
type SwipeRepository interface {
	AppendSwipe(ctx context.Context, d model.SwipeDecision) (model.SwipeDecision, bool, error)
	SwipesByParticipant(ctx context.Context, roomID uuid.UUID, p model.ParticipantID) ([]model.SwipeDecision, error)
}

//go:generate mockery --name=MatchEngine --output=./mocks/swipe/engine --filename=engine.go
type MatchEngine interface {
	OnLike(ctx context.Context, d model.SwipeDecision) (*model.Match, error)
}

//go:generate mockery --name=Publisher --output=./mocks/swipe/publisher --filename=publisher.go
type Publisher interface {
	Publish(ctx context.Context, roomID uuid.UUID, e model.Event) (model.Event, error)
}

type movieKey struct {
	roomID  uuid.UUID
	movieID model.MovieID
}

type Usecase struct {
	rooms  RoomReader
	repo   SwipeRepository
	engine MatchEngine
	bus    Publisher

	roomLocks  *keylock.Set[uuid.UUID]
	movieLocks *keylock.Set[movieKey]

	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Usecase)

// WithRoomLocks shares the room lock set with the room usecase so a swipe
// never interleaves with a close of the same room.
func WithRoomLocks(locks *keylock.Set[uuid.UUID]) Option {
	return func(u *Usecase) {
		u.roomLocks = locks
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(rooms RoomReader, repo SwipeRepository, engine MatchEngine, bus Publisher, opts ...Option) *Usecase {
	u := &Usecase{
		rooms:      rooms,
		repo:       repo,
		engine:     engine,
		bus:        bus,
		roomLocks:  keylock.New[uuid.UUID](),
		movieLocks: keylock.New[movieKey](),
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// RecordSwipe appends the participant's decision for a movie of the room deck.
// A repeated (participant, movie) pair returns the first decision and publishes nothing.
func (u *Usecase) RecordSwipe(
	ctx context.Context,
	roomID uuid.UUID,
	p model.ParticipantID,
	movieID model.MovieID,
	decision model.Decision,
) (model.SwipeDecision, error) {
	unlockRoom := u.roomLocks.RLock(roomID)
	defer unlockRoom()

	room, err := u.rooms.RoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.SwipeDecision{}, model.ErrNotFound
		}
		return model.SwipeDecision{}, errors.Join(model.ErrInternal, err)
	}
	if room.IsClosed() {
		return model.SwipeDecision{}, model.ErrRoomClosed
	}
	if !room.Seated(p) {
		return model.SwipeDecision{}, model.ErrNotParticipant
	}
	if !decision.Valid() || !room.Deck.Contains(movieID) {
		return model.SwipeDecision{}, model.ErrInvalidDecision
	}

	unlockMovie := u.movieLocks.Lock(movieKey{roomID: roomID, movieID: movieID})
	defer unlockMovie()

	stored, created, err := u.repo.AppendSwipe(ctx, model.SwipeDecision{
		RoomID:        roomID,
		ParticipantID: p,
		MovieID:       movieID,
		Decision:      decision,
		CreatedAt:     u.now(),
	})
	if err != nil {
		if errors.Is(err, model.ErrRoomClosed) {
			return model.SwipeDecision{}, model.ErrRoomClosed
		}
		return model.SwipeDecision{}, errors.Join(model.ErrInternal, err)
	}

	if !created {
		metrics.DuplicateSwipes.Inc()
		u.logger.Debug("duplicate swipe",
			slog.String("room_id", roomID.String()),
			slog.String("movie_id", string(movieID)))
		// Finishes a match interrupted after the like was stored.
		if _, err := u.engine.OnLike(ctx, stored); err != nil {
			return model.SwipeDecision{}, err
		}
		return stored, nil
	}

	metrics.Swipes.WithLabelValues(string(stored.Decision)).Inc()
	if _, err := u.bus.Publish(ctx, roomID, model.SwipeRecorded(stored)); err != nil {
		u.logger.Error("failed to publish swipe",
			slog.String("room_id", roomID.String()),
			slog.String("error", err.Error()))
	}

	if _, err := u.engine.OnLike(ctx, stored); err != nil {
		u.logger.Error("match engine failed",
			slog.String("room_id", roomID.String()),
			slog.String("movie_id", string(movieID)),
			slog.String("error", err.Error()))
		return model.SwipeDecision{}, err
	}

	return stored, nil
}

// History returns the participant's decisions in Seq order.
func (u *Usecase) History(ctx context.Context, roomID uuid.UUID, p model.ParticipantID) ([]model.SwipeDecision, error) {
	room, err := u.rooms.RoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, errors.Join(model.ErrInternal, err)
	}
	if !room.Seated(p) {
		return nil, model.ErrNotParticipant
	}

	history, err := u.repo.SwipesByParticipant(ctx, roomID, p)
	if err != nil {
		return nil, errors.Join(model.ErrInternal, err)
	}
	return history, nil
}
