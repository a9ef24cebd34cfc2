package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventParticipantJoined EventType = "PARTICIPANT_JOINED"
	EventSwipeRecorded     EventType = "SWIPE_RECORDED"
	EventMatchFound        EventType = "MATCH_FOUND"
	EventRoomClosed        EventType = "ROOM_CLOSED"
)

// Event is a committed room state transition as seen by subscribers.
// ID and Seq are assigned by the bus on publish; Seq grows by one per room.
type Event struct {
	ID         string       `json:"id"`
	RoomID     uuid.UUID    `json:"room_id"`
	Seq        uint64       `json:"seq"`
	Type       EventType    `json:"type"`
	OccurredAt time.Time    `json:"occurred_at"`
	Payload    EventPayload `json:"payload"`
}

// EventPayload names participants by Handle only.
type EventPayload struct {
	Participant  string     `json:"participant,omitempty"`
	Participants []string   `json:"participants,omitempty"`
	Status       RoomStatus `json:"status,omitempty"`
	MovieID      MovieID    `json:"movie_id,omitempty"`
	Seq          int64      `json:"swipe_seq,omitempty"`
	MatchedAt    *time.Time `json:"matched_at,omitempty"`
}

func ParticipantJoined(room Room, p ParticipantID) Event {
	return Event{
		RoomID: room.ID,
		Type:   EventParticipantJoined,
		Payload: EventPayload{
			Participant:  Handle(room.ID, p),
			Participants: Handles(room.ID, room.Participants()),
			Status:       room.Status,
		},
	}
}

// SwipeRecorded carries no decision. Partners learn about likes only through MATCH_FOUND.
func SwipeRecorded(d SwipeDecision) Event {
	return Event{
		RoomID: d.RoomID,
		Type:   EventSwipeRecorded,
		Payload: EventPayload{
			Participant: Handle(d.RoomID, d.ParticipantID),
			MovieID:     d.MovieID,
			Seq:         d.Seq,
		},
	}
}

func MatchFound(m Match) Event {
	at := m.MatchedAt
	return Event{
		RoomID: m.RoomID,
		Type:   EventMatchFound,
		Payload: EventPayload{
			MovieID:      m.MovieID,
			Participants: Handles(m.RoomID, m.ParticipantIDs[:]),
			MatchedAt:    &at,
		},
	}
}

func RoomClosed(room Room) Event {
	return Event{
		RoomID: room.ID,
		Type:   EventRoomClosed,
		Payload: EventPayload{
			Status: StatusClosed,
		},
	}
}

// Subscription is a lazy per-room event stream. Next blocks until an event arrives,
// the context is cancelled or the stream ends with ErrTopicClosed / ErrSubscriberLagged.
type Subscription interface {
	Next(ctx context.Context) (Event, error)
	Close() error
}
