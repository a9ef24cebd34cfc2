package infra_catalog

import (
	"context"
	"slices"
	"strings"

	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/samber/lo"
)

// Static is a fixed, versioned catalog compiled into the binary.
// The deck for a genre is every movie tagged with it, best rated first, ties by id.
type Static struct {
	movies   []model.MovieMeta
	deckSize int
}

func NewStatic(deckSize int) *Static {
	return NewStaticWith(defaultMovies, deckSize)
}

func NewStaticWith(movies []model.MovieMeta, deckSize int) *Static {
	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, func(a, b model.MovieMeta) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return &Static{movies: sorted, deckSize: deckSize}
}

func (c *Static) GetDeck(_ context.Context, genre string) (model.Deck, error) {
	genre, ok := model.CanonicalGenre(genre)
	if !ok {
		return nil, model.ErrInvalidGenre
	}

	tagged := lo.Filter(c.movies, func(m model.MovieMeta, _ int) bool {
		return slices.Contains(m.Genres, genre)
	})
	if len(tagged) == 0 {
		return nil, model.ErrInvalidGenre
	}
	if c.deckSize > 0 && len(tagged) > c.deckSize {
		tagged = tagged[:c.deckSize]
	}

	return lo.Map(tagged, func(m model.MovieMeta, _ int) model.MovieID {
		return m.ID
	}), nil
}

// Movies returns the catalog in deck order. Used to seed persistent catalogs.
func (c *Static) Movies() []model.MovieMeta {
	return slices.Clone(c.movies)
}

func (c *Static) Movie(_ context.Context, id model.MovieID) (model.MovieMeta, bool) {
	return lo.Find(c.movies, func(m model.MovieMeta) bool {
		return m.ID == id
	})
}

var defaultMovies = []model.MovieMeta{
	{ID: "1", Title: "Mad Max: Fury Road", Genres: []string{"Action", "Sci-Fi"}, Year: 2015, Rating: 8.1},
	{ID: "2", Title: "John Wick", Genres: []string{"Action", "Thriller"}, Year: 2014, Rating: 7.4},
	{ID: "3", Title: "The Dark Knight", Genres: []string{"Action", "Drama", "Thriller"}, Year: 2008, Rating: 9.0},
	{ID: "4", Title: "Die Hard", Genres: []string{"Action", "Thriller"}, Year: 1988, Rating: 8.2},
	{ID: "5", Title: "Gladiator", Genres: []string{"Action", "Drama"}, Year: 2000, Rating: 8.5},
	{ID: "6", Title: "Superbad", Genres: []string{"Comedy"}, Year: 2007, Rating: 7.6},
	{ID: "7", Title: "The Grand Budapest Hotel", Genres: []string{"Comedy", "Drama"}, Year: 2014, Rating: 8.1},
	{ID: "8", Title: "Groundhog Day", Genres: []string{"Comedy", "Romance"}, Year: 1993, Rating: 8.0},
	{ID: "9", Title: "Hot Fuzz", Genres: []string{"Action", "Comedy"}, Year: 2007, Rating: 7.8},
	{ID: "10", Title: "The Big Lebowski", Genres: []string{"Comedy"}, Year: 1998, Rating: 8.1},
	{ID: "11", Title: "The Shawshank Redemption", Genres: []string{"Drama"}, Year: 1994, Rating: 9.3},
	{ID: "12", Title: "Whiplash", Genres: []string{"Drama"}, Year: 2014, Rating: 8.5},
	{ID: "13", Title: "Parasite", Genres: []string{"Drama", "Thriller"}, Year: 2019, Rating: 8.5},
	{ID: "14", Title: "Moonlight", Genres: []string{"Drama", "Romance"}, Year: 2016, Rating: 7.4},
	{ID: "15", Title: "Get Out", Genres: []string{"Horror", "Thriller"}, Year: 2017, Rating: 7.8},
	{ID: "16", Title: "Hereditary", Genres: []string{"Horror", "Drama"}, Year: 2018, Rating: 7.3},
	{ID: "17", Title: "The Shining", Genres: []string{"Horror"}, Year: 1980, Rating: 8.4},
	{ID: "18", Title: "A Quiet Place", Genres: []string{"Horror", "Sci-Fi"}, Year: 2018, Rating: 7.5},
	{ID: "19", Title: "Alien", Genres: []string{"Horror", "Sci-Fi"}, Year: 1979, Rating: 8.5},
	{ID: "20", Title: "Before Sunrise", Genres: []string{"Romance", "Drama"}, Year: 1995, Rating: 8.1},
	{ID: "21", Title: "La La Land", Genres: []string{"Romance", "Drama", "Comedy"}, Year: 2016, Rating: 8.0},
	{ID: "22", Title: "Pride & Prejudice", Genres: []string{"Romance", "Drama"}, Year: 2005, Rating: 7.8},
	{ID: "23", Title: "Notting Hill", Genres: []string{"Romance", "Comedy"}, Year: 1999, Rating: 7.2},
	{ID: "24", Title: "Blade Runner 2049", Genres: []string{"Sci-Fi", "Drama"}, Year: 2017, Rating: 8.0},
	{ID: "25", Title: "Interstellar", Genres: []string{"Sci-Fi", "Drama"}, Year: 2014, Rating: 8.7},
	{ID: "26", Title: "The Matrix", Genres: []string{"Sci-Fi", "Action"}, Year: 1999, Rating: 8.7},
	{ID: "27", Title: "Arrival", Genres: []string{"Sci-Fi", "Drama"}, Year: 2016, Rating: 7.9},
	{ID: "28", Title: "Se7en", Genres: []string{"Thriller", "Drama"}, Year: 1995, Rating: 8.6},
	{ID: "29", Title: "Gone Girl", Genres: []string{"Thriller", "Drama"}, Year: 2014, Rating: 8.1},
	{ID: "30", Title: "Prisoners", Genres: []string{"Thriller", "Drama"}, Year: 2013, Rating: 8.1},
	{ID: "31", Title: "Spirited Away", Genres: []string{"Animation"}, Year: 2001, Rating: 8.6},
	{ID: "32", Title: "Toy Story", Genres: []string{"Animation", "Comedy"}, Year: 1995, Rating: 8.3},
	{ID: "33", Title: "Spider-Man: Into the Spider-Verse", Genres: []string{"Animation", "Action"}, Year: 2018, Rating: 8.4},
	{ID: "34", Title: "WALL-E", Genres: []string{"Animation", "Sci-Fi", "Romance"}, Year: 2008, Rating: 8.4},
	{ID: "35", Title: "Coco", Genres: []string{"Animation", "Drama"}, Year: 2017, Rating: 8.4},
	{ID: "36", Title: "Free Solo", Genres: []string{"Documentary"}, Year: 2018, Rating: 8.1},
	{ID: "37", Title: "Jiro Dreams of Sushi", Genres: []string{"Documentary"}, Year: 2011, Rating: 7.8},
	{ID: "38", Title: "Man on Wire", Genres: []string{"Documentary"}, Year: 2008, Rating: 7.7},
	{ID: "39", Title: "Won't You Be My Neighbor?", Genres: []string{"Documentary"}, Year: 2018, Rating: 8.3},
	{ID: "40", Title: "Apollo 11", Genres: []string{"Documentary"}, Year: 2019, Rating: 8.1},
}
