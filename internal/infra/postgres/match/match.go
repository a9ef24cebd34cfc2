package infra_postgres_match

import (
	"context"
	"fmt"
	"time"

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

type matchDTO struct {
	RoomID       uuid.UUID `db:"room_id"`
	MovieID      string    `db:"movie_id"`
	ParticipantA string    `db:"participant_a"`
	ParticipantB string    `db:"participant_b"`
	MatchedAt    time.Time `db:"matched_at"`
}

func (d matchDTO) toDomain() model.Match {
	return model.Match{
		RoomID:         d.RoomID,
		MovieID:        model.MovieID(d.MovieID),
		MatchedAt:      d.MatchedAt,
		ParticipantIDs: [2]model.ParticipantID{model.ParticipantID(d.ParticipantA), model.ParticipantID(d.ParticipantB)},
	}
}

// AddLiker inserts into the (room, movie) liker set unless it already holds two
// members and returns the resulting set. Callers for the same pair are serialized
// by a transaction-scoped advisory lock, so across processes exactly one of two
// concurrent likers reads back the full pair.
func (d *Driver) AddLiker(ctx context.Context, roomID uuid.UUID, movieID model.MovieID, p model.ParticipantID) ([]model.ParticipantID, bool, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin add liker: %w", err)
	}
	defer tx.Rollback()

	lock := `SELECT pg_advisory_xact_lock(hashtext($1::text || '/' || $2))`
	if _, err := tx.ExecContext(ctx, lock, roomID, string(movieID)); err != nil {
		return nil, false, fmt.Errorf("lock liker set: %w", err)
	}

	insert := `
		INSERT INTO room_movie_likes (room_id, movie_id, participant_id)
		SELECT $1, $2, $3
		WHERE (SELECT count(*) FROM room_movie_likes WHERE room_id = $1 AND movie_id = $2) < 2
		ON CONFLICT DO NOTHING
	`
	result, err := tx.ExecContext(ctx, insert, roomID, string(movieID), string(p))
	if err != nil {
		return nil, false, fmt.Errorf("insert liker: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	var ids []string
	query := `SELECT participant_id FROM room_movie_likes WHERE room_id = $1 AND movie_id = $2 ORDER BY participant_id`
	if err := tx.SelectContext(ctx, &ids, query, roomID, string(movieID)); err != nil {
		return nil, false, fmt.Errorf("select likers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit add liker: %w", err)
	}

	likers := make([]model.ParticipantID, 0, len(ids))
	for _, id := range ids {
		likers = append(likers, model.ParticipantID(id))
	}
	return likers, rowsAffected == 1, nil
}

// CreateMatch reports false when the (room, movie) pair already matched.
func (d *Driver) CreateMatch(ctx context.Context, m model.Match) (bool, error) {
	query := `
		INSERT INTO matches (room_id, movie_id, participant_a, participant_b, matched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_id, movie_id) DO NOTHING
	`

	result, err := d.db.ExecContext(ctx, query,
		m.RoomID, string(m.MovieID), string(m.ParticipantIDs[0]), string(m.ParticipantIDs[1]), m.MatchedAt)
	if err != nil {
		return false, fmt.Errorf("insert match: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

func (d *Driver) Matches(ctx context.Context, roomID uuid.UUID) ([]model.Match, error) {
	query := `
		SELECT room_id, movie_id, participant_a, participant_b, matched_at
		FROM matches
		WHERE room_id = $1
		ORDER BY matched_at, movie_id
	`

	var dtos []matchDTO
	if err := d.db.SelectContext(ctx, &dtos, query, roomID); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	matches := make([]model.Match, 0, len(dtos))
	for _, dto := range dtos {
		matches = append(matches, dto.toDomain())
	}
	return matches, nil
}
