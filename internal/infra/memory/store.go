package infra_memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
)

// Store keeps rooms and everything owned by them in process memory.
// The outer lock only guards the indexes; room state has its own lock so
// unrelated rooms never contend.
type Store struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*roomState
	codes map[string]uuid.UUID // live (not CLOSED) rooms only
}

type roomState struct {
	mu sync.Mutex

	room    model.Room
	swipes  map[model.ParticipantID][]model.SwipeDecision
	decided map[swipeKey]int // index into swipes[participant]
	lastSeq map[model.ParticipantID]int64
	likers  map[model.MovieID][]model.ParticipantID
	matches map[model.MovieID]model.Match
}

type swipeKey struct {
	participant model.ParticipantID
	movie       model.MovieID
}

func New() *Store {
	return &Store{
		rooms: make(map[uuid.UUID]*roomState),
		codes: make(map[string]uuid.UUID),
	}
}

func (s *Store) state(roomID uuid.UUID) (*roomState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.rooms[roomID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return st, nil
}

func cloneRoom(r model.Room) model.Room {
	r.Deck = slices.Clone(r.Deck)
	return r
}

func (s *Store) CreateRoom(_ context.Context, room model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.codes[room.Code]; taken {
		return model.ErrCodeConflict
	}
	if _, exists := s.rooms[room.ID]; exists {
		return model.ErrCodeConflict
	}

	s.rooms[room.ID] = &roomState{
		room:    cloneRoom(room),
		swipes:  make(map[model.ParticipantID][]model.SwipeDecision),
		decided: make(map[swipeKey]int),
		lastSeq: make(map[model.ParticipantID]int64),
		likers:  make(map[model.MovieID][]model.ParticipantID),
		matches: make(map[model.MovieID]model.Match),
	}
	s.codes[room.Code] = room.ID
	return nil
}

func (s *Store) RoomByID(_ context.Context, roomID uuid.UUID) (model.Room, error) {
	st, err := s.state(roomID)
	if err != nil {
		return model.Room{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return cloneRoom(st.room), nil
}

func (s *Store) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	s.mu.RLock()
	roomID, ok := s.codes[code]
	s.mu.RUnlock()
	if !ok {
		return model.Room{}, model.ErrNotFound
	}
	return s.RoomByID(ctx, roomID)
}

// FillSlot is the compare-and-swap on a slot: it only succeeds while the slot is still empty.
// Filling the second slot flips the room to ACTIVE in the same step.
func (s *Store) FillSlot(_ context.Context, roomID uuid.UUID, slot model.Slot, p model.ParticipantID) (model.Room, error) {
	st, err := s.state(roomID)
	if err != nil {
		return model.Room{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.room.IsClosed() {
		return model.Room{}, model.ErrRoomClosed
	}

	switch slot {
	case model.Slot1:
		if st.room.Slot1 != model.EmptyParticipant {
			return model.Room{}, model.ErrSlotTaken
		}
		st.room.Slot1 = p
	case model.Slot2:
		if st.room.Slot2 != model.EmptyParticipant {
			return model.Room{}, model.ErrSlotTaken
		}
		st.room.Slot2 = p
	default:
		return model.Room{}, model.ErrSlotTaken
	}

	if st.room.IsFull() {
		st.room.Status = model.StatusActive
	}
	return cloneRoom(st.room), nil
}

// CloseRoom marks the room CLOSED and releases its code. changed is false when it was closed already.
func (s *Store) CloseRoom(_ context.Context, roomID uuid.UUID, at time.Time) (model.Room, bool, error) {
	st, err := s.state(roomID)
	if err != nil {
		return model.Room{}, false, err
	}

	st.mu.Lock()
	if st.room.IsClosed() {
		room := cloneRoom(st.room)
		st.mu.Unlock()
		return room, false, nil
	}
	st.room.Status = model.StatusClosed
	st.room.ClosedAt = &at
	room := cloneRoom(st.room)
	st.mu.Unlock()

	s.mu.Lock()
	if s.codes[room.Code] == roomID {
		delete(s.codes, room.Code)
	}
	s.mu.Unlock()

	return room, true, nil
}

// Purge drops the room together with its swipes, likers and matches.
func (s *Store) Purge(_ context.Context, roomID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.rooms[roomID]
	if !ok {
		return model.ErrNotFound
	}
	if s.codes[st.room.Code] == roomID {
		delete(s.codes, st.room.Code)
	}
	delete(s.rooms, roomID)
	return nil
}

// AppendSwipe writes the decision with the participant's next sequence number.
// A repeated (participant, movie) pair returns the stored decision and created=false.
func (s *Store) AppendSwipe(_ context.Context, d model.SwipeDecision) (model.SwipeDecision, bool, error) {
	st, err := s.state(d.RoomID)
	if err != nil {
		return model.SwipeDecision{}, false, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.room.IsClosed() {
		return model.SwipeDecision{}, false, model.ErrRoomClosed
	}

	key := swipeKey{participant: d.ParticipantID, movie: d.MovieID}
	if idx, ok := st.decided[key]; ok {
		return st.swipes[d.ParticipantID][idx], false, nil
	}

	st.lastSeq[d.ParticipantID]++
	d.Seq = st.lastSeq[d.ParticipantID]
	st.swipes[d.ParticipantID] = append(st.swipes[d.ParticipantID], d)
	st.decided[key] = len(st.swipes[d.ParticipantID]) - 1

	return d, true, nil
}

func (s *Store) SwipesByParticipant(_ context.Context, roomID uuid.UUID, p model.ParticipantID) ([]model.SwipeDecision, error) {
	st, err := s.state(roomID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return slices.Clone(st.swipes[p]), nil
}

func (s *Store) SwipeCounts(_ context.Context, roomID uuid.UUID) (map[model.ParticipantID]int, error) {
	st, err := s.state(roomID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	counts := make(map[model.ParticipantID]int, len(st.swipes))
	for p, ds := range st.swipes {
		counts[p] = len(ds)
	}
	return counts, nil
}

// AddLiker inserts p into the liker set of the movie unless the set already holds two
// participants. It returns the resulting set and whether p was newly added.
func (s *Store) AddLiker(_ context.Context, roomID uuid.UUID, movieID model.MovieID, p model.ParticipantID) ([]model.ParticipantID, bool, error) {
	st, err := s.state(roomID)
	if err != nil {
		return nil, false, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	likers := st.likers[movieID]
	if slices.Contains(likers, p) || len(likers) >= 2 {
		return slices.Clone(likers), false, nil
	}
	st.likers[movieID] = append(likers, p)
	return slices.Clone(st.likers[movieID]), true, nil
}

// CreateMatch stores the match unless one already exists for the movie.
func (s *Store) CreateMatch(_ context.Context, m model.Match) (bool, error) {
	st, err := s.state(m.RoomID)
	if err != nil {
		return false, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.matches[m.MovieID]; exists {
		return false, nil
	}
	st.matches[m.MovieID] = m
	return true, nil
}

func (s *Store) Matches(_ context.Context, roomID uuid.UUID) ([]model.Match, error) {
	st, err := s.state(roomID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	matches := make([]model.Match, 0, len(st.matches))
	for _, m := range st.matches {
		matches = append(matches, m)
	}
	slices.SortFunc(matches, func(a, b model.Match) int {
		if c := a.MatchedAt.Compare(b.MatchedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.MovieID), string(b.MovieID))
	})
	return matches, nil
}
