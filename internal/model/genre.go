package model

import (
	"strings"

	"github.com/samber/lo"
)

// Genres offered on room creation.
var Genres = []string{
	"Action",
	"Comedy",
	"Drama",
	"Horror",
	"Romance",
	"Sci-Fi",
	"Thriller",
	"Animation",
	"Documentary",
}

// CanonicalGenre resolves a genre case-insensitively to its listed spelling.
func CanonicalGenre(genre string) (string, bool) {
	return lo.Find(Genres, func(g string) bool {
		return strings.EqualFold(g, strings.TrimSpace(genre))
	})
}
