package model

import "github.com/samber/lo"

type MovieID string

// Deck is the ordered candidate list of a room. It never changes after the room is created.
type Deck []MovieID

func (d Deck) Contains(id MovieID) bool {
	return lo.Contains(d, id)
}

type MovieMeta struct {
	ID     MovieID
	Title  string
	Genres []string
	Year   int
	Rating float64
}
