package infra_memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type MemoryStoreSuite struct {
	suite.Suite
}

func validRoom(code string) model.Room {
	return model.Room{
		ID:        uuid.New(),
		Code:      code,
		Genre:     "Action",
		Slot1:     "creator",
		Status:    model.StatusOpen,
		Deck:      model.Deck{"1", "2", "7"},
		CreatedAt: time.Now(),
	}
}

func (s *MemoryStoreSuite) TestCreateRoom(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setup       func(st *Store)
		code        string
		expectedErr error
	}{
		{
			name:  "Should create room with free code",
			setup: func(st *Store) {},
			code:  "AB23CD",
		},
		{
			name: "Should reject code held by a live room",
			setup: func(st *Store) {
				_ = st.CreateRoom(context.Background(), validRoom("AB23CD"))
			},
			code:        "AB23CD",
			expectedErr: model.ErrCodeConflict,
		},
		{
			name: "Should reuse code of a closed room",
			setup: func(st *Store) {
				r := validRoom("AB23CD")
				_ = st.CreateRoom(context.Background(), r)
				_, _, _ = st.CloseRoom(context.Background(), r.ID, time.Now())
			},
			code: "AB23CD",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			st := New()
			tc.setup(st)

			err := st.CreateRoom(context.Background(), validRoom(tc.code))

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func (s *MemoryStoreSuite) TestFillSlot(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	st := New()
	room := validRoom("QWERTY")
	assert.NoError(t, st.CreateRoom(ctx, room))

	_, err := st.FillSlot(ctx, room.ID, model.Slot1, "intruder")
	assert.ErrorIs(t, err, model.ErrSlotTaken)

	updated, err := st.FillSlot(ctx, room.ID, model.Slot2, "guest")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusActive, updated.Status)
	assert.Equal(t, model.ParticipantID("guest"), updated.Slot2)

	_, err = st.FillSlot(ctx, room.ID, model.Slot2, "late")
	assert.ErrorIs(t, err, model.ErrSlotTaken)

	_, _, _ = st.CloseRoom(ctx, room.ID, time.Now())
	_, err = st.FillSlot(ctx, room.ID, model.Slot2, "late")
	assert.ErrorIs(t, err, model.ErrRoomClosed)
}

func (s *MemoryStoreSuite) TestRoomByCode(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	st := New()
	room := validRoom("ZXCVBN")
	assert.NoError(t, st.CreateRoom(ctx, room))

	found, err := st.RoomByCode(ctx, "ZXCVBN")
	assert.NoError(t, err)
	assert.Equal(t, room.ID, found.ID)

	_, changed, err := st.CloseRoom(ctx, room.ID, time.Now())
	assert.NoError(t, err)
	assert.True(t, changed)

	_, changed, err = st.CloseRoom(ctx, room.ID, time.Now())
	assert.NoError(t, err)
	assert.False(t, changed)

	_, err = st.RoomByCode(ctx, "ZXCVBN")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func (s *MemoryStoreSuite) TestAppendSwipe(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	st := New()
	room := validRoom("SWIPE2")
	assert.NoError(t, st.CreateRoom(ctx, room))

	first, created, err := st.AppendSwipe(ctx, model.SwipeDecision{
		RoomID: room.ID, ParticipantID: "a", MovieID: "7", Decision: model.DecisionLike,
	})
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), first.Seq)

	again, created, err := st.AppendSwipe(ctx, model.SwipeDecision{
		RoomID: room.ID, ParticipantID: "a", MovieID: "7", Decision: model.DecisionSkip,
	})
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, again)

	second, created, err := st.AppendSwipe(ctx, model.SwipeDecision{
		RoomID: room.ID, ParticipantID: "a", MovieID: "2", Decision: model.DecisionSkip,
	})
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(2), second.Seq)

	history, err := st.SwipesByParticipant(ctx, room.ID, "a")
	assert.NoError(t, err)
	assert.Len(t, history, 2)

	counts, err := st.SwipeCounts(ctx, room.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, counts["a"])
}

func (s *MemoryStoreSuite) TestAddLiker(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	st := New()
	room := validRoom("LIKERS")
	assert.NoError(t, st.CreateRoom(ctx, room))

	likers, added, err := st.AddLiker(ctx, room.ID, "7", "a")
	assert.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []model.ParticipantID{"a"}, likers)

	likers, added, _ = st.AddLiker(ctx, room.ID, "7", "a")
	assert.False(t, added)
	assert.Len(t, likers, 1)

	likers, added, _ = st.AddLiker(ctx, room.ID, "7", "b")
	assert.True(t, added)
	assert.Equal(t, []model.ParticipantID{"a", "b"}, likers)

	likers, added, _ = st.AddLiker(ctx, room.ID, "7", "c")
	assert.False(t, added)
	assert.Len(t, likers, 2)

	likers, added, _ = st.AddLiker(ctx, room.ID, "2", "c")
	assert.True(t, added)
	assert.Len(t, likers, 1)
}

func (s *MemoryStoreSuite) TestCreateMatchOnce(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	st := New()
	room := validRoom("MATCH2")
	assert.NoError(t, st.CreateRoom(ctx, room))

	m := model.Match{RoomID: room.ID, MovieID: "7", MatchedAt: time.Now()}
	created, err := st.CreateMatch(ctx, m)
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = st.CreateMatch(ctx, m)
	assert.NoError(t, err)
	assert.False(t, created)

	matches, err := st.Matches(ctx, room.ID)
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
}

func (s *MemoryStoreSuite) TestPurge(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	st := New()
	room := validRoom("PURGE2")
	assert.NoError(t, st.CreateRoom(ctx, room))

	assert.NoError(t, st.Purge(ctx, room.ID))
	_, err := st.RoomByID(ctx, room.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, st.Purge(ctx, room.ID), model.ErrNotFound)
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.RunSuite(t, new(MemoryStoreSuite))
}

func TestFillSlotRaceHasSingleWinner(t *testing.T) {
	ctx := context.Background()
	st := New()
	room := validRoom("RACE22")
	assert.NoError(t, st.CreateRoom(ctx, room))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := st.FillSlot(ctx, room.ID, model.Slot2, model.ParticipantID(uuid.NewString()))
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
