package infra_postgres_room

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

type roomDTO struct {
	ID        uuid.UUID      `db:"id"`
	Code      string         `db:"code"`
	Genre     string         `db:"genre"`
	Slot1     sql.NullString `db:"slot1"`
	Slot2     sql.NullString `db:"slot2"`
	Status    string         `db:"status"`
	Deck      pq.StringArray `db:"deck"`
	CreatedAt time.Time      `db:"created_at"`
	ClosedAt  sql.NullTime   `db:"closed_at"`
}

func (d roomDTO) toDomain() model.Room {
	room := model.Room{
		ID:        d.ID,
		Code:      d.Code,
		Genre:     d.Genre,
		Slot1:     model.ParticipantID(d.Slot1.String),
		Slot2:     model.ParticipantID(d.Slot2.String),
		Status:    model.RoomStatus(d.Status),
		Deck:      lo.Map(d.Deck, func(id string, _ int) model.MovieID { return model.MovieID(id) }),
		CreatedAt: d.CreatedAt,
	}
	if d.ClosedAt.Valid {
		at := d.ClosedAt.Time
		room.ClosedAt = &at
	}
	return room
}

func fromDomain(r model.Room) roomDTO {
	return roomDTO{
		ID:        r.ID,
		Code:      r.Code,
		Genre:     r.Genre,
		Slot1:     nullable(r.Slot1),
		Slot2:     nullable(r.Slot2),
		Status:    string(r.Status),
		Deck:      lo.Map(r.Deck, func(id model.MovieID, _ int) string { return string(id) }),
		CreatedAt: r.CreatedAt,
	}
}

func nullable(p model.ParticipantID) sql.NullString {
	return sql.NullString{String: string(p), Valid: p != model.EmptyParticipant}
}
