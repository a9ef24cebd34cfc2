package infra_postgres_movie

import (
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/lib/pq"
)

type MovieDB struct {
	ID     string         `db:"id"`
	Title  string         `db:"title"`
	Genres pq.StringArray `db:"genres"`
	Year   int            `db:"year"`
	Rating float64        `db:"rating"`
}

func (m *MovieDB) ToDomain() model.MovieMeta {
	return model.MovieMeta{
		ID:     model.MovieID(m.ID),
		Title:  m.Title,
		Genres: []string(m.Genres),
		Year:   m.Year,
		Rating: m.Rating,
	}
}

func FromDomain(mm model.MovieMeta) MovieDB {
	return MovieDB{
		ID:     string(mm.ID),
		Title:  mm.Title,
		Genres: pq.StringArray(mm.Genres),
		Year:   mm.Year,
		Rating: mm.Rating,
	}
}
