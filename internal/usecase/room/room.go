package usecase_room

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

//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --filename=repository.go
type RoomRepository interface {
	CreateRoom(ctx context.Context, room model.Room) error
	RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error)
	RoomByCode(ctx context.Context, code string) (model.Room, error)
	FillSlot(ctx context.Context, roomID uuid.UUID, slot model.Slot, p model.ParticipantID) (model.Room, error)
	CloseRoom(ctx context.Context, roomID uuid.UUID, at time.Time) (model.Room, bool, error)
	Purge(ctx context.Context, roomID uuid.UUID) error
}

//go:generate mockery --name=Catalog --output=./mocks/room/catalog --filename=catalog.go
type Catalog interface {
	GetDeck(ctx context.Context, genre string) (model.Deck, error)
}

//go:generate mockery --name=EventBus --output=./mocks/room/bus --filename=bus.go
type EventBus interface {
	Publish(ctx context.Context, roomID uuid.UUID, e model.Event) (model.Event, error)
	Subscribe(ctx context.Context, roomID uuid.UUID) (model.Subscription, error)
	LastSeq(ctx context.Context, roomID uuid.UUID) (uint64, error)
	CloseTopic(ctx context.Context, roomID uuid.UUID) error
	DropTopic(ctx context.Context, roomID uuid.UUID) error
}

// ProgressReader and MatchReader feed the reconnect snapshot.
type ProgressReader interface {
	SwipeCounts(ctx context.Context, roomID uuid.UUID) (map[model.ParticipantID]int, error)
}

type MatchReader interface {
	Matches(ctx context.Context, roomID uuid.UUID) ([]model.Match, error)
}

type CodeGenerator interface {
	Generate() string
}

type Usecase struct {
	repo     RoomRepository
	catalog  Catalog
	bus      EventBus
	progress ProgressReader
	matches  MatchReader
	codes    CodeGenerator
	locks    *keylock.Set[uuid.UUID]

	codeAttempts int
	joinRetries  int
	now          func() time.Time
	logger       *slog.Logger
}

type Option func(*Usecase)

func WithCodeGenerator(g CodeGenerator) Option {
	return func(u *Usecase) {
		u.codes = g
	}
}

func WithCodeAttempts(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.codeAttempts = n
		}
	}
}

func WithJoinRetries(n int) Option {
	return func(u *Usecase) {
		if n >= 0 {
			u.joinRetries = n
		}
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

// WithLocks shares the per-room lock set with the swipe usecase.
func WithLocks(locks *keylock.Set[uuid.UUID]) Option {
	return func(u *Usecase) {
		u.locks = locks
	}
}

func New(
	repo RoomRepository,
	catalog Catalog,
	bus EventBus,
	progress ProgressReader,
	matches MatchReader,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		repo:         repo,
		catalog:      catalog,
		bus:          bus,
		progress:     progress,
		matches:      matches,
		codes:        RandomCodes{},
		locks:        keylock.New[uuid.UUID](),
		codeAttempts: 8,
		joinRetries:  1,
		now:          time.Now,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreateRoom commits an OPEN room with the creator seated in slot1.
// An empty creator gets a freshly minted participant token.
func (u *Usecase) CreateRoom(ctx context.Context, genre string, creator model.ParticipantID) (model.Room, error) {
	if creator == model.EmptyParticipant {
		creator = resolveParticipant()
	}

	genre, ok := model.CanonicalGenre(genre)
	if !ok {
		return model.Room{}, model.ErrInvalidGenre
	}

	deck, err := u.catalog.GetDeck(ctx, genre)
	if err != nil {
		if errors.Is(err, model.ErrInvalidGenre) {
			return model.Room{}, model.ErrInvalidGenre
		}
		return model.Room{}, errors.Join(model.ErrInternal, err)
	}
	if len(deck) == 0 {
		return model.Room{}, model.ErrInvalidGenre
	}

	// Codes can collide with live rooms. Retrying...
	for attempt := 1; attempt <= u.codeAttempts; attempt++ {
		code := model.NormalizeCode(u.codes.Generate())
		if !model.IsValidCode(code) {
			u.logger.Warn("generated room code is malformed", slog.String("code", code), slog.Int("attempt", attempt))
			continue
		}

		room := model.Room{
			ID:        uuid.New(),
			Code:      code,
			Genre:     genre,
			Slot1:     creator,
			Status:    model.StatusOpen,
			Deck:      deck,
			CreatedAt: u.now(),
		}

		err := u.repo.CreateRoom(ctx, room)
		if err == nil {
			metrics.RoomsCreated.Inc()
			u.logger.Info("room created",
				slog.String("room_id", room.ID.String()),
				slog.String("code", room.Code),
				slog.String("genre", genre),
				slog.Int("deck", len(deck)))
			return room, nil
		}
		if !errors.Is(err, model.ErrCodeConflict) {
			return model.Room{}, errors.Join(model.ErrInternal, err)
		}

		metrics.CodeCollisions.Inc()
		u.logger.Debug("room code collision", slog.String("code", room.Code), slog.Int("attempt", attempt))
	}

	u.logger.Error("room code generation exhausted", slog.Int("attempts", u.codeAttempts))
	return model.Room{}, model.ErrCodeGenerationExhausted
}

// JoinRoom seats the participant in the first free slot via compare-and-swap.
// When a concurrent joiner wins the slot the room is re-read up to joinRetries times.
func (u *Usecase) JoinRoom(ctx context.Context, code string, p model.ParticipantID) (model.Room, error) {
	if p == model.EmptyParticipant {
		p = resolveParticipant()
	}

	code = model.NormalizeCode(code)
	if !model.IsValidCode(code) {
		metrics.JoinAttempts.WithLabelValues("not_found").Inc()
		return model.Room{}, model.ErrNotFound
	}

	for attempt := 0; ; attempt++ {
		room, err := u.repo.RoomByCode(ctx, code)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				metrics.JoinAttempts.WithLabelValues("not_found").Inc()
				return model.Room{}, model.ErrNotFound
			}
			metrics.JoinAttempts.WithLabelValues("error").Inc()
			return model.Room{}, errors.Join(model.ErrInternal, err)
		}
		if room.IsClosed() {
			metrics.JoinAttempts.WithLabelValues("not_found").Inc()
			return model.Room{}, model.ErrNotFound
		}
		if room.Seated(p) {
			metrics.JoinAttempts.WithLabelValues("rejoined").Inc()
			return room, nil
		}

		slot, free := room.FreeSlot()
		if !free {
			metrics.JoinAttempts.WithLabelValues("full").Inc()
			return model.Room{}, model.ErrRoomFull
		}

		joined, err := u.fillSlot(ctx, room.ID, slot, p)
		switch {
		case err == nil:
			metrics.JoinAttempts.WithLabelValues("joined").Inc()
			return joined, nil
		case errors.Is(err, model.ErrSlotTaken):
			if attempt >= u.joinRetries {
				metrics.JoinAttempts.WithLabelValues("full").Inc()
				return model.Room{}, model.ErrRoomFull
			}
			u.logger.Debug("join lost the slot race, retrying",
				slog.String("room_id", room.ID.String()),
				slog.Int("attempt", attempt))
		case errors.Is(err, model.ErrRoomClosed), errors.Is(err, model.ErrNotFound):
			metrics.JoinAttempts.WithLabelValues("not_found").Inc()
			return model.Room{}, model.ErrNotFound
		default:
			metrics.JoinAttempts.WithLabelValues("error").Inc()
			return model.Room{}, errors.Join(model.ErrInternal, err)
		}
	}
}

// fillSlot commits the slot and publishes under the room lock, so subscribers see
// the join only after it is stored and in commit order.
func (u *Usecase) fillSlot(ctx context.Context, roomID uuid.UUID, slot model.Slot, p model.ParticipantID) (model.Room, error) {
	unlock := u.locks.Lock(roomID)
	defer unlock()

	room, err := u.repo.FillSlot(ctx, roomID, slot, p)
	if err != nil {
		return model.Room{}, err
	}

	u.logger.Info("participant joined",
		slog.String("room_id", roomID.String()),
		slog.String("status", string(room.Status)))
	u.publish(ctx, model.ParticipantJoined(room, p))

	return room, nil
}

// Leave closes the room on behalf of a seated participant.
func (u *Usecase) Leave(ctx context.Context, roomID uuid.UUID, p model.ParticipantID) (model.Room, error) {
	room, err := u.RoomByID(ctx, roomID)
	if err != nil {
		return model.Room{}, err
	}
	if !room.Seated(p) {
		return model.Room{}, model.ErrNotParticipant
	}
	return u.Close(ctx, roomID)
}

// Close is the teardown hook. Closing twice is a no-op.
func (u *Usecase) Close(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	unlock := u.locks.Lock(roomID)
	defer unlock()

	room, changed, err := u.repo.CloseRoom(ctx, roomID, u.now())
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Room{}, model.ErrNotFound
		}
		return model.Room{}, errors.Join(model.ErrInternal, err)
	}
	if !changed {
		return room, nil
	}

	metrics.RoomsClosed.Inc()
	u.logger.Info("room closed", slog.String("room_id", roomID.String()), slog.String("code", room.Code))

	u.publish(ctx, model.RoomClosed(room))
	if err := u.bus.CloseTopic(ctx, roomID); err != nil {
		u.logger.Error("failed to close topic", slog.String("room_id", roomID.String()), slog.String("error", err.Error()))
	}
	return room, nil
}

// Purge closes the room if needed and drops it with its swipes and matches.
func (u *Usecase) Purge(ctx context.Context, roomID uuid.UUID) error {
	if _, err := u.Close(ctx, roomID); err != nil {
		return err
	}

	unlock := u.locks.Lock(roomID)
	defer unlock()

	if err := u.repo.Purge(ctx, roomID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return errors.Join(model.ErrInternal, err)
	}
	if err := u.bus.DropTopic(ctx, roomID); err != nil {
		u.logger.Error("failed to drop topic", slog.String("room_id", roomID.String()), slog.String("error", err.Error()))
	}

	u.logger.Info("room purged", slog.String("room_id", roomID.String()))
	return nil
}

// Subscribe attaches to the room's event stream. Closed rooms have no stream.
func (u *Usecase) Subscribe(ctx context.Context, roomID uuid.UUID) (model.Subscription, error) {
	unlock := u.locks.Lock(roomID)
	defer unlock()

	room, err := u.RoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.IsClosed() {
		return nil, model.ErrRoomClosed
	}

	sub, err := u.bus.Subscribe(ctx, roomID)
	if err != nil {
		if errors.Is(err, model.ErrTopicClosed) {
			return nil, model.ErrRoomClosed
		}
		return nil, errors.Join(model.ErrInternal, err)
	}
	return sub, nil
}

// State is the reconnect snapshot. The event sequence is read first, so any event
// with a greater Seq may already be reflected in the returned state.
func (u *Usecase) State(ctx context.Context, roomID uuid.UUID) (model.RoomState, error) {
	seq, err := u.bus.LastSeq(ctx, roomID)
	if err != nil {
		return model.RoomState{}, errors.Join(model.ErrInternal, err)
	}

	room, err := u.RoomByID(ctx, roomID)
	if err != nil {
		return model.RoomState{}, err
	}

	matches, err := u.matches.Matches(ctx, roomID)
	if err != nil {
		return model.RoomState{}, errors.Join(model.ErrInternal, err)
	}

	progress, err := u.progress.SwipeCounts(ctx, roomID)
	if err != nil {
		return model.RoomState{}, errors.Join(model.ErrInternal, err)
	}

	return model.RoomState{
		Room:     room,
		Matches:  matches,
		Progress: progress,
		Seq:      seq,
	}, nil
}

func (u *Usecase) RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	room, err := u.repo.RoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Room{}, model.ErrNotFound
		}
		return model.Room{}, errors.Join(model.ErrInternal, err)
	}
	return room, nil
}

// RoomByCode resolves a live room. Closed rooms release their code and are not found.
func (u *Usecase) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	code = model.NormalizeCode(code)
	if !model.IsValidCode(code) {
		return model.Room{}, model.ErrNotFound
	}

	room, err := u.repo.RoomByCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Room{}, model.ErrNotFound
		}
		return model.Room{}, errors.Join(model.ErrInternal, err)
	}
	if room.IsClosed() {
		return model.Room{}, model.ErrNotFound
	}
	return room, nil
}

// publish never fails the caller: committed state is authoritative and
// subscribers recover through State.
func (u *Usecase) publish(ctx context.Context, e model.Event) {
	if _, err := u.bus.Publish(ctx, e.RoomID, e); err != nil {
		u.logger.Error("failed to publish event",
			slog.String("room_id", e.RoomID.String()),
			slog.String("type", string(e.Type)),
			slog.String("error", err.Error()))
	}
}

func resolveParticipant() model.ParticipantID {
	return model.ParticipantID(uuid.NewString())
}
