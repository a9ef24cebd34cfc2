package infra_postgres_room

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type RoomInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "postgres")
	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: New(sqlxDB),
		ctx:    context.Background(),
	}
}

var columns = []string{"id", "code", "genre", "slot1", "slot2", "status", "deck", "created_at", "closed_at"}

func roomRow(id uuid.UUID, slot2 any, status string) *sqlmock.Rows {
	return sqlmock.NewRows(columns).
		AddRow(id.String(), "ABCDEF", "Drama", "alice", slot2, status, "{3,7}", time.Unix(0, 0), nil)
}

func (s *RoomInfraUnitSuite) TestCreateRoom(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectedError error
	}{
		{
			name: "Should insert room",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rooms")).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Should map unique violation to code conflict",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rooms")).
					WillReturnError(&pq.Error{Code: uniqueViolation})
			},
			expectedError: model.ErrCodeConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			err := r.driver.CreateRoom(r.ctx, model.Room{
				ID:     uuid.New(),
				Code:   "ABCDEF",
				Genre:  "Drama",
				Slot1:  "alice",
				Status: model.StatusOpen,
				Deck:   model.Deck{"3", "7"},
			})

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestRoomByCode(t provider.T) {
	t.Parallel()

	t.Run("Should map row to room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		id := uuid.New()
		r.mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE code = $1 AND status <> 'CLOSED'")).
			WithArgs("ABCDEF").
			WillReturnRows(roomRow(id, nil, "OPEN"))

		room, err := r.driver.RoomByCode(r.ctx, "ABCDEF")

		assert.NoError(t, err)
		assert.Equal(t, id, room.ID)
		assert.Equal(t, model.ParticipantID("alice"), room.Slot1)
		assert.Equal(t, model.EmptyParticipant, room.Slot2)
		assert.Equal(t, model.Deck{"3", "7"}, room.Deck)
		assert.Nil(t, room.ClosedAt)
	})

	t.Run("Should report missing room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE code = $1")).
			WillReturnError(sql.ErrNoRows)

		_, err := r.driver.RoomByCode(r.ctx, "ZZZZZZ")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func (s *RoomInfraUnitSuite) TestFillSlot(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, id uuid.UUID)
		expectedError error
	}{
		{
			name: "Should fill the empty slot and activate",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectQuery(regexp.QuoteMeta("SET slot2 = $2")).
					WithArgs(id, "bob").
					WillReturnRows(roomRow(id, "bob", "ACTIVE"))
			},
		},
		{
			name: "Should report a taken slot",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectQuery(regexp.QuoteMeta("SET slot2 = $2")).
					WithArgs(id, "bob").
					WillReturnError(sql.ErrNoRows)
				r.mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id = $1")).
					WithArgs(id).
					WillReturnRows(roomRow(id, "carol", "ACTIVE"))
			},
			expectedError: model.ErrSlotTaken,
		},
		{
			name: "Should report a closed room",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectQuery(regexp.QuoteMeta("SET slot2 = $2")).
					WillReturnError(sql.ErrNoRows)
				r.mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id = $1")).
					WillReturnRows(roomRow(id, nil, "CLOSED"))
			},
			expectedError: model.ErrRoomClosed,
		},
		{
			name: "Should pass through driver failure",
			setupMocks: func(r *resources, id uuid.UUID) {
				r.mock.ExpectQuery(regexp.QuoteMeta("SET slot2 = $2")).
					WillReturnError(errors.New("connection reset"))
			},
			expectedError: errors.New("fill slot"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			id := uuid.New()
			tc.setupMocks(r, id)

			room, err := r.driver.FillSlot(r.ctx, id, model.Slot2, "bob")

			switch {
			case tc.expectedError == nil:
				assert.NoError(t, err)
				assert.Equal(t, model.StatusActive, room.Status)
				assert.Equal(t, model.ParticipantID("bob"), room.Slot2)
			case errors.Is(tc.expectedError, model.ErrSlotTaken), errors.Is(tc.expectedError, model.ErrRoomClosed):
				assert.ErrorIs(t, err, tc.expectedError)
			default:
				assert.ErrorContains(t, err, tc.expectedError.Error())
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *RoomInfraUnitSuite) TestCloseRoom(t provider.T) {
	t.Parallel()

	t.Run("Should close live room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		id := uuid.New()
		at := time.Unix(100, 0)
		r.mock.ExpectQuery(regexp.QuoteMeta("SET status = 'CLOSED', closed_at = $2")).
			WithArgs(id, at).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id.String(), "ABCDEF", "Drama", "alice", "bob", "CLOSED", "{3}", time.Unix(0, 0), at))

		room, changed, err := r.driver.CloseRoom(r.ctx, id, at)

		assert.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, room.IsClosed())
		if assert.NotNil(t, room.ClosedAt) {
			assert.True(t, at.Equal(*room.ClosedAt))
		}
	})

	t.Run("Should be a no-op on closed room", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		id := uuid.New()
		r.mock.ExpectQuery(regexp.QuoteMeta("SET status = 'CLOSED'")).WillReturnError(sql.ErrNoRows)
		r.mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id = $1")).WillReturnRows(roomRow(id, "bob", "CLOSED"))

		_, changed, err := r.driver.CloseRoom(r.ctx, id, time.Now())

		assert.NoError(t, err)
		assert.False(t, changed)
	})
}

func (s *RoomInfraUnitSuite) TestPurge(t provider.T) {
	r := initResources(t)
	id := uuid.New()
	r.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, r.driver.Purge(r.ctx, id), model.ErrNotFound)
}

func TestRoomInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomInfraUnitSuite))
}
