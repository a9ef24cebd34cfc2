package infra_postgres_room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const roomColumns = `id, code, genre, slot1, slot2, status, deck, created_at, closed_at`

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

func (d *Driver) CreateRoom(ctx context.Context, room model.Room) error {
	dto := fromDomain(room)

	query := `
		INSERT INTO rooms (id, code, genre, slot1, slot2, status, deck, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := d.db.ExecContext(ctx, query,
		dto.ID, dto.Code, dto.Genre, dto.Slot1, dto.Slot2, dto.Status, dto.Deck, dto.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.ErrCodeConflict
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (d *Driver) RoomByID(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	var dto roomDTO

	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	if err := d.db.GetContext(ctx, &dto, query, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Room{}, model.ErrNotFound
		}
		return model.Room{}, fmt.Errorf("select room: %w", err)
	}
	return dto.toDomain(), nil
}

// RoomByCode only sees live rooms, the same set the code index covers.
func (d *Driver) RoomByCode(ctx context.Context, code string) (model.Room, error) {
	var dto roomDTO

	query := `SELECT ` + roomColumns + ` FROM rooms WHERE code = $1 AND status <> 'CLOSED'`

	if err := d.db.GetContext(ctx, &dto, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Room{}, model.ErrNotFound
		}
		return model.Room{}, fmt.Errorf("select room by code: %w", err)
	}
	return dto.toDomain(), nil
}

// FillSlot is a compare-and-swap on an empty slot. The room turns ACTIVE in the
// same statement when the other slot is already taken.
func (d *Driver) FillSlot(ctx context.Context, roomID uuid.UUID, slot model.Slot, p model.ParticipantID) (model.Room, error) {
	var target, other string
	switch slot {
	case model.Slot1:
		target, other = "slot1", "slot2"
	case model.Slot2:
		target, other = "slot2", "slot1"
	default:
		return model.Room{}, fmt.Errorf("unknown slot %d", slot)
	}

	query := fmt.Sprintf(`
		UPDATE rooms
		SET %[1]s = $2,
		    status = CASE WHEN %[2]s IS NOT NULL THEN 'ACTIVE' ELSE status END
		WHERE id = $1 AND %[1]s IS NULL AND status <> 'CLOSED'
		RETURNING %[3]s
	`, target, other, roomColumns)

	var dto roomDTO
	err := d.db.GetContext(ctx, &dto, query, roomID, string(p))
	if err == nil {
		return dto.toDomain(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, fmt.Errorf("fill slot: %w", err)
	}

	current, err := d.RoomByID(ctx, roomID)
	if err != nil {
		return model.Room{}, err
	}
	if current.IsClosed() {
		return model.Room{}, model.ErrRoomClosed
	}
	return model.Room{}, model.ErrSlotTaken
}

func (d *Driver) CloseRoom(ctx context.Context, roomID uuid.UUID, at time.Time) (model.Room, bool, error) {
	query := `
		UPDATE rooms
		SET status = 'CLOSED', closed_at = $2
		WHERE id = $1 AND status <> 'CLOSED'
		RETURNING ` + roomColumns

	var dto roomDTO
	err := d.db.GetContext(ctx, &dto, query, roomID, at)
	if err == nil {
		return dto.toDomain(), true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, false, fmt.Errorf("close room: %w", err)
	}

	current, err := d.RoomByID(ctx, roomID)
	if err != nil {
		return model.Room{}, false, err
	}
	return current, false, nil
}

// Purge removes the room together with its swipes, likes and matches.
func (d *Driver) Purge(ctx context.Context, roomID uuid.UUID) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
