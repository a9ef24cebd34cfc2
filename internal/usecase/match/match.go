package usecase_match

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/metrics"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
)

//go:generate mockery --name=LikeRepository --output=./mocks/match/likes --filename=likes.go
type LikeRepository interface {
	AddLiker(ctx context.Context, roomID uuid.UUID, movieID model.MovieID, p model.ParticipantID) ([]model.ParticipantID, bool, error)
}

//go:generate mockery --name=MatchRepository --output=./mocks/match/repository --filename=repository.go
type MatchRepository interface {
	CreateMatch(ctx context.Context, m model.Match) (bool, error)
	Matches(ctx context.Context, roomID uuid.UUID) ([]model.Match, error)
}

//go:generate mockery --name=Publisher --output=./mocks/match/publisher --filename=publisher.go
type Publisher interface {
	Publish(ctx context.Context, roomID uuid.UUID, e model.Event) (model.Event, error)
}

type Usecase struct {
	likes   LikeRepository
	matches MatchRepository
	bus     Publisher

	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Usecase)

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

func New(likes LikeRepository, matches MatchRepository, bus Publisher, opts ...Option) *Usecase {
	u := &Usecase{
		likes:   likes,
		matches: matches,
		bus:     bus,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// OnLike adds the liker to the (room, movie) set and commits a Match once both
// participants are in it. Callers serialize per (room, movie).
// Re-running it for an already recorded like is safe and yields no second Match.
func (u *Usecase) OnLike(ctx context.Context, d model.SwipeDecision) (*model.Match, error) {
	if d.Decision != model.DecisionLike {
		return nil, nil
	}

	likers, _, err := u.likes.AddLiker(ctx, d.RoomID, d.MovieID, d.ParticipantID)
	if err != nil {
		return nil, errors.Join(model.ErrInternal, err)
	}
	if len(likers) < 2 {
		return nil, nil
	}

	match := model.Match{
		RoomID:         d.RoomID,
		MovieID:        d.MovieID,
		MatchedAt:      u.now(),
		ParticipantIDs: pair(likers[0], likers[1]),
	}

	created, err := u.matches.CreateMatch(ctx, match)
	if err != nil {
		return nil, errors.Join(model.ErrInternal, err)
	}
	if !created {
		return nil, nil
	}

	metrics.Matches.Inc()
	u.logger.Info("match found",
		slog.String("room_id", d.RoomID.String()),
		slog.String("movie_id", string(d.MovieID)))

	if _, err := u.bus.Publish(ctx, d.RoomID, model.MatchFound(match)); err != nil {
		u.logger.Error("failed to publish match",
			slog.String("room_id", d.RoomID.String()),
			slog.String("movie_id", string(d.MovieID)),
			slog.String("error", err.Error()))
	}

	return &match, nil
}

func (u *Usecase) Matches(ctx context.Context, roomID uuid.UUID) ([]model.Match, error) {
	matches, err := u.matches.Matches(ctx, roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, errors.Join(model.ErrInternal, err)
	}
	return matches, nil
}

func pair(a, b model.ParticipantID) [2]model.ParticipantID {
	if b < a {
		a, b = b, a
	}
	return [2]model.ParticipantID{a, b}
}
