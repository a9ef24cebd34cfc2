package usecase_swipe

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	engine_mocks "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/swipe/mocks/swipe/engine"
	pub_mocks "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/swipe/mocks/swipe/publisher"
	repo_mocks "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/swipe/mocks/swipe/repository"
	rooms_mocks "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/swipe/mocks/swipe/rooms"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseSwipeUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	rooms   *rooms_mocks.RoomReader
	repo    *repo_mocks.SwipeRepository
	engine  *engine_mocks.MatchEngine
	bus     *pub_mocks.Publisher
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	rooms := rooms_mocks.NewRoomReader(t)
	repo := repo_mocks.NewSwipeRepository(t)
	engine := engine_mocks.NewMatchEngine(t)
	bus := pub_mocks.NewPublisher(t)

	return &resources{
		usecase: New(rooms, repo, engine, bus),
		rooms:   rooms,
		repo:    repo,
		engine:  engine,
		bus:     bus,
		ctx:     context.Background(),
	}
}

func activeRoom() model.Room {
	return model.Room{
		ID:     uuid.New(),
		Code:   "ABCDEF",
		Slot1:  "alice",
		Slot2:  "bob",
		Status: model.StatusActive,
		Deck:   model.Deck{"1", "2", "3"},
	}
}

func (s *UsecaseSwipeUnitSuite) TestRecordSwipe(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		participant   model.ParticipantID
		movie         model.MovieID
		decision      model.Decision
		setupMocks    func(r *resources, room model.Room)
		expectedError error
		expectedSeq   int64
	}{
		{
			name:        "Should record like, publish and consult engine",
			participant: "alice",
			movie:       "2",
			decision:    model.DecisionLike,
			setupMocks: func(r *resources, room model.Room) {
				stored := model.SwipeDecision{RoomID: room.ID, ParticipantID: "alice", MovieID: "2", Decision: model.DecisionLike, Seq: 1}
				r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()
				r.repo.On("AppendSwipe", mock.Anything, mock.MatchedBy(func(d model.SwipeDecision) bool {
					return d.ParticipantID == "alice" && d.MovieID == "2" && d.Decision == model.DecisionLike
				})).Return(stored, true, nil).Once()
				r.bus.On("Publish", mock.Anything, room.ID, mock.MatchedBy(func(e model.Event) bool {
					return e.Type == model.EventSwipeRecorded && e.Payload.MovieID == "2"
				})).Return(model.Event{}, nil).Once()
				r.engine.On("OnLike", mock.Anything, stored).Return(nil, nil).Once()
			},
			expectedSeq: 1,
		},
		{
			name:        "Should return original decision on duplicate without event",
			participant: "alice",
			movie:       "2",
			decision:    model.DecisionSkip,
			setupMocks: func(r *resources, room model.Room) {
				original := model.SwipeDecision{RoomID: room.ID, ParticipantID: "alice", MovieID: "2", Decision: model.DecisionLike, Seq: 4}
				r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()
				r.repo.On("AppendSwipe", mock.Anything, mock.AnythingOfType("model.SwipeDecision")).Return(original, false, nil).Once()
				r.engine.On("OnLike", mock.Anything, original).Return(nil, nil).Once()
			},
			expectedSeq: 4,
		},
		{
			name:        "Should reject movie outside the deck",
			participant: "alice",
			movie:       "99",
			decision:    model.DecisionLike,
			setupMocks: func(r *resources, room model.Room) {
				r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()
			},
			expectedError: model.ErrInvalidDecision,
		},
		{
			name:        "Should reject unknown decision",
			participant: "alice",
			movie:       "1",
			decision:    model.Decision("MAYBE"),
			setupMocks: func(r *resources, room model.Room) {
				r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()
			},
			expectedError: model.ErrInvalidDecision,
		},
		{
			name:        "Should reject stranger",
			participant: "mallory",
			movie:       "1",
			decision:    model.DecisionLike,
			setupMocks: func(r *resources, room model.Room) {
				r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()
			},
			expectedError: model.ErrNotParticipant,
		},
		{
			name:        "Should reject swipe in closed room",
			participant: "alice",
			movie:       "1",
			decision:    model.DecisionLike,
			setupMocks: func(r *resources, room model.Room) {
				room.Status = model.StatusClosed
				r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()
			},
			expectedError: model.ErrRoomClosed,
		},
		{
			name:        "Should not find unknown room",
			participant: "alice",
			movie:       "1",
			decision:    model.DecisionLike,
			setupMocks: func(r *resources, room model.Room) {
				r.rooms.On("RoomByID", mock.Anything, room.ID).Return(model.Room{}, model.ErrNotFound).Once()
			},
			expectedError: model.ErrNotFound,
		},
		{
			name:        "Should surface engine failure",
			participant: "bob",
			movie:       "3",
			decision:    model.DecisionLike,
			setupMocks: func(r *resources, room model.Room) {
				stored := model.SwipeDecision{RoomID: room.ID, ParticipantID: "bob", MovieID: "3", Decision: model.DecisionLike, Seq: 1}
				r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()
				r.repo.On("AppendSwipe", mock.Anything, mock.AnythingOfType("model.SwipeDecision")).Return(stored, true, nil).Once()
				r.bus.On("Publish", mock.Anything, room.ID, mock.AnythingOfType("model.Event")).Return(model.Event{}, nil).Once()
				r.engine.On("OnLike", mock.Anything, stored).Return(nil, errors.Join(model.ErrInternal, errors.New("db down"))).Once()
			},
			expectedError: model.ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			room := activeRoom()
			tc.setupMocks(r, room)

			got, err := r.usecase.RecordSwipe(r.ctx, room.ID, tc.participant, tc.movie, tc.decision)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedSeq, got.Seq)
		})
	}
}

func (s *UsecaseSwipeUnitSuite) TestHistory(t provider.T) {
	t.Parallel()

	t.Run("Should return history of participant", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		room := activeRoom()
		history := []model.SwipeDecision{{Seq: 1, MovieID: "1"}, {Seq: 2, MovieID: "3"}}
		r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()
		r.repo.On("SwipesByParticipant", mock.Anything, room.ID, model.ParticipantID("bob")).Return(history, nil).Once()

		got, err := r.usecase.History(r.ctx, room.ID, "bob")
		assert.NoError(t, err)
		assert.Equal(t, history, got)
	})

	t.Run("Should reject stranger", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		room := activeRoom()
		r.rooms.On("RoomByID", mock.Anything, room.ID).Return(room, nil).Once()

		_, err := r.usecase.History(r.ctx, room.ID, "mallory")
		assert.ErrorIs(t, err, model.ErrNotParticipant)
	})
}

func TestUsecaseSwipeUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseSwipeUnitSuite))
}
