package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

const (
	StatusOpen   RoomStatus = "OPEN"
	StatusActive RoomStatus = "ACTIVE"
	StatusClosed RoomStatus = "CLOSED"
)

const CodeLen = 6

// CodeAlphabet is what RandomCodes draws from. It leaves out 0, O, 1 and I, while
// any code of CodeLen upper-case letters and digits is accepted for lookup.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ParticipantID is an opaque per-session token. It carries no meaning outside of the room it was minted for.
type ParticipantID string

const EmptyParticipant ParticipantID = ""

// Handle is the public name of a participant inside one room. The token is a
// bearer credential and never leaves the server; peers and observers see handles.
// Handles are stable per (room, participant) and differ between rooms.
func Handle(roomID uuid.UUID, p ParticipantID) string {
	if p == EmptyParticipant {
		return ""
	}
	sum := sha256.Sum256([]byte(roomID.String() + "/" + string(p)))
	return hex.EncodeToString(sum[:8])
}

func Handles(roomID uuid.UUID, ps []ParticipantID) []string {
	handles := make([]string, 0, len(ps))
	for _, p := range ps {
		handles = append(handles, Handle(roomID, p))
	}
	return handles
}

type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

type Room struct {
	ID        uuid.UUID
	Code      string
	Genre     string
	Slot1     ParticipantID
	Slot2     ParticipantID
	Status    RoomStatus
	Deck      Deck
	CreatedAt time.Time
	ClosedAt  *time.Time
}

func (r Room) IsFull() bool {
	return r.Slot1 != EmptyParticipant && r.Slot2 != EmptyParticipant
}

// FreeSlot returns the first empty slot, or false when the room is full.
func (r Room) FreeSlot() (Slot, bool) {
	switch {
	case r.Slot1 == EmptyParticipant:
		return Slot1, true
	case r.Slot2 == EmptyParticipant:
		return Slot2, true
	}
	return 0, false
}

func (r Room) Seated(p ParticipantID) bool {
	return p != EmptyParticipant && (r.Slot1 == p || r.Slot2 == p)
}

func (r Room) Participants() []ParticipantID {
	ps := make([]ParticipantID, 0, 2)
	if r.Slot1 != EmptyParticipant {
		ps = append(ps, r.Slot1)
	}
	if r.Slot2 != EmptyParticipant {
		ps = append(ps, r.Slot2)
	}
	return ps
}

func (r Room) IsClosed() bool {
	return r.Status == StatusClosed
}

type Participant struct {
	SessionID ParticipantID
	RoomID    uuid.UUID
	JoinedAt  time.Time
}

// NormalizeCode makes user supplied codes comparable with stored ones.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func IsValidCode(code string) bool {
	if len(code) != CodeLen {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
