package infra_postgres_swipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type swipeDTO struct {
	RoomID        uuid.UUID    `db:"room_id"`
	ParticipantID string       `db:"participant_id"`
	MovieID       string       `db:"movie_id"`
	Decision      string       `db:"decision"`
	Seq           int64        `db:"seq"`
	CreatedAt     sql.NullTime `db:"created_at"`
}

func (d swipeDTO) toDomain() model.SwipeDecision {
	return model.SwipeDecision{
		RoomID:        d.RoomID,
		ParticipantID: model.ParticipantID(d.ParticipantID),
		MovieID:       model.MovieID(d.MovieID),
		Decision:      model.Decision(d.Decision),
		Seq:           d.Seq,
		CreatedAt:     d.CreatedAt.Time,
	}
}

// AppendSwipe inserts the decision while holding a share lock on a live room row,
// so a concurrent close either waits or makes the insert select nothing.
// seq comes from a bigserial: increasing per participant, with gaps.
func (d *Driver) AppendSwipe(ctx context.Context, s model.SwipeDecision) (model.SwipeDecision, bool, error) {
	query := `
		INSERT INTO swipes (room_id, participant_id, movie_id, decision, created_at)
		SELECT id, $2, $3, $4, $5
		FROM rooms
		WHERE id = $1 AND status <> 'CLOSED'
		FOR SHARE
		ON CONFLICT (room_id, participant_id, movie_id) DO NOTHING
		RETURNING seq
	`

	var seq int64
	err := d.db.GetContext(ctx, &seq, query,
		s.RoomID, string(s.ParticipantID), string(s.MovieID), string(s.Decision), s.CreatedAt)
	if err == nil {
		s.Seq = seq
		return s, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.SwipeDecision{}, false, fmt.Errorf("insert swipe: %w", err)
	}

	existing, err := d.swipe(ctx, s.RoomID, s.ParticipantID, s.MovieID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.SwipeDecision{}, false, err
	}

	var status string
	err = d.db.GetContext(ctx, &status, `SELECT status FROM rooms WHERE id = $1`, s.RoomID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.SwipeDecision{}, false, model.ErrNotFound
	case err != nil:
		return model.SwipeDecision{}, false, fmt.Errorf("select room status: %w", err)
	default:
		return model.SwipeDecision{}, false, model.ErrRoomClosed
	}
}

func (d *Driver) swipe(ctx context.Context, roomID uuid.UUID, p model.ParticipantID, movieID model.MovieID) (model.SwipeDecision, error) {
	var dto swipeDTO

	query := `
		SELECT room_id, participant_id, movie_id, decision, seq, created_at
		FROM swipes
		WHERE room_id = $1 AND participant_id = $2 AND movie_id = $3
	`

	if err := d.db.GetContext(ctx, &dto, query, roomID, string(p), string(movieID)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SwipeDecision{}, model.ErrNotFound
		}
		return model.SwipeDecision{}, fmt.Errorf("select swipe: %w", err)
	}
	return dto.toDomain(), nil
}

func (d *Driver) SwipesByParticipant(ctx context.Context, roomID uuid.UUID, p model.ParticipantID) ([]model.SwipeDecision, error) {
	var dtos []swipeDTO

	query := `
		SELECT room_id, participant_id, movie_id, decision, seq, created_at
		FROM swipes
		WHERE room_id = $1 AND participant_id = $2
		ORDER BY seq
	`

	if err := d.db.SelectContext(ctx, &dtos, query, roomID, string(p)); err != nil {
		return nil, fmt.Errorf("select swipes: %w", err)
	}

	swipes := make([]model.SwipeDecision, 0, len(dtos))
	for _, dto := range dtos {
		swipes = append(swipes, dto.toDomain())
	}
	return swipes, nil
}

func (d *Driver) SwipeCounts(ctx context.Context, roomID uuid.UUID) (map[model.ParticipantID]int, error) {
	var rows []struct {
		ParticipantID string `db:"participant_id"`
		Count         int    `db:"count"`
	}

	query := `
		SELECT participant_id, count(*) AS count
		FROM swipes
		WHERE room_id = $1
		GROUP BY participant_id
	`

	if err := d.db.SelectContext(ctx, &rows, query, roomID); err != nil {
		return nil, fmt.Errorf("count swipes: %w", err)
	}

	counts := make(map[model.ParticipantID]int, len(rows))
	for _, row := range rows {
		counts[model.ParticipantID(row.ParticipantID)] = row.Count
	}
	return counts, nil
}
