package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
)

var ErrUnknownSession = errors.New("unknown session")

//go:generate mockery --name=SessionCache --output=./mocks --filename=session_cache.go
type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Service hands out per-tab participant tokens. A token is only meaningful while
// it is bound to a room; it is neither an account nor a credential.
type Service struct {
	cache SessionCache
	ttl   time.Duration
}

func New(cache SessionCache, ttl time.Duration) *Service {
	return &Service{cache: cache, ttl: ttl}
}

func (s *Service) Mint() model.ParticipantID {
	return model.ParticipantID(uuid.NewString())
}

// Resolve returns the supplied token or a freshly minted one when the client has none.
func (s *Service) Resolve(token string) (model.ParticipantID, bool) {
	if token == "" {
		return s.Mint(), true
	}
	return model.ParticipantID(token), false
}

// Bind remembers which room the token belongs to and refreshes its TTL.
func (s *Service) Bind(_ context.Context, p model.ParticipantID, roomID uuid.UUID) error {
	return s.cache.Set(string(p), roomID.String(), s.ttl)
}

func (s *Service) RoomOf(_ context.Context, p model.ParticipantID) (uuid.UUID, error) {
	raw, err := s.cache.Get(string(p))
	if err != nil {
		return uuid.Nil, errors.Join(model.ErrInternal, err)
	}
	if raw == "" {
		return uuid.Nil, ErrUnknownSession
	}
	roomID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrUnknownSession, err)
	}
	return roomID, nil
}

func (s *Service) Forget(_ context.Context, p model.ParticipantID) error {
	return s.cache.Delete(string(p))
}
