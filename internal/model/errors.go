package model

import "errors"

var (
	ErrNotFound                = errors.New("room not found")
	ErrRoomFull                = errors.New("room is full")
	ErrInvalidDecision         = errors.New("invalid decision")
	ErrRoomClosed              = errors.New("room is closed")
	ErrCodeGenerationExhausted = errors.New("room code generation exhausted")
	ErrInvalidGenre            = errors.New("invalid genre")
	ErrNotParticipant          = errors.New("not a participant of this room")
	ErrInternal                = errors.New("internal error")
)

var (
	ErrTopicClosed      = errors.New("topic closed")
	ErrSubscriberLagged = errors.New("subscriber lagged behind, resync from snapshot")
)

// Store level conflicts. They never leave the usecase layer.
var (
	ErrCodeConflict = errors.New("code conflict")
	ErrSlotTaken    = errors.New("slot already taken")
)
