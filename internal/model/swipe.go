package model

import (
	"time"

	"github.com/google/uuid"
)

type Decision string

const (
	DecisionLike Decision = "LIKE"
	DecisionSkip Decision = "SKIP"
)

func (d Decision) Valid() bool {
	return d == DecisionLike || d == DecisionSkip
}

type SwipeDecision struct {
	RoomID        uuid.UUID
	ParticipantID ParticipantID
	MovieID       MovieID
	Decision      Decision
	Seq           int64
	CreatedAt     time.Time
}

type Match struct {
	RoomID         uuid.UUID
	MovieID        MovieID
	MatchedAt      time.Time
	ParticipantIDs [2]ParticipantID
}

// RoomState is a point-in-time snapshot used by reconnecting subscribers.
// Seq is the last event sequence observed before the snapshot was read, so every
// event with a greater Seq may already be reflected in the snapshot.
type RoomState struct {
	Room     Room
	Matches  []Match
	Progress map[ParticipantID]int
	Seq      uint64
}
