package http_room

import (
	"time"

	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/samber/lo"
)

type CreateRequestDTO struct {
	Genre string `json:"genre" binding:"required"`
}

type JoinRequestDTO struct {
	Code string `json:"code" binding:"required"`
}

// RoomDTO lists participant handles. You is the caller's own handle when seated.
type RoomDTO struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	Genre        string     `json:"genre"`
	Status       string     `json:"status"`
	Participants []string   `json:"participants"`
	You          string     `json:"you,omitempty"`
	Deck         []string   `json:"deck"`
	CreatedAt    time.Time  `json:"created_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

type MatchDTO struct {
	MovieID      string    `json:"movie_id"`
	MatchedAt    time.Time `json:"matched_at"`
	Participants []string  `json:"participants"`
}

type StateDTO struct {
	Room     RoomDTO        `json:"room"`
	Matches  []MatchDTO     `json:"matches"`
	Progress map[string]int `json:"progress"`
	Seq      uint64         `json:"seq"`
}

type MovieDTO struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Year   int      `json:"year"`
	Rating float64  `json:"rating"`
}

type GenresDTO struct {
	Genres []string `json:"genres"`
}

func ToRoomDTO(r model.Room, viewer model.ParticipantID) RoomDTO {
	dto := RoomDTO{
		ID:           r.ID.String(),
		Code:         r.Code,
		Genre:        r.Genre,
		Status:       string(r.Status),
		Participants: model.Handles(r.ID, r.Participants()),
		Deck:         lo.Map(r.Deck, func(id model.MovieID, _ int) string { return string(id) }),
		CreatedAt:    r.CreatedAt,
		ClosedAt:     r.ClosedAt,
	}
	if r.Seated(viewer) {
		dto.You = model.Handle(r.ID, viewer)
	}
	return dto
}

func ToMatchDTO(m model.Match) MatchDTO {
	return MatchDTO{
		MovieID:      string(m.MovieID),
		MatchedAt:    m.MatchedAt,
		Participants: model.Handles(m.RoomID, m.ParticipantIDs[:]),
	}
}

// ToStateDTO keys progress by handle.
func ToStateDTO(s model.RoomState, viewer model.ParticipantID) StateDTO {
	return StateDTO{
		Room:    ToRoomDTO(s.Room, viewer),
		Matches: lo.Map(s.Matches, func(m model.Match, _ int) MatchDTO { return ToMatchDTO(m) }),
		Progress: lo.MapKeys(s.Progress, func(_ int, p model.ParticipantID) string {
			return model.Handle(s.Room.ID, p)
		}),
		Seq: s.Seq,
	}
}

func ToMovieDTO(m model.MovieMeta) MovieDTO {
	return MovieDTO{
		ID:     string(m.ID),
		Title:  m.Title,
		Genres: m.Genres,
		Year:   m.Year,
		Rating: m.Rating,
	}
}
