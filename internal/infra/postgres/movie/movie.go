package infra_postgres_movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

type Repository struct {
	db       *sqlx.DB
	deckSize int
	logger   *slog.Logger
}

func New(db *sqlx.DB, deckSize int) *Repository {
	return &Repository{db: db, deckSize: deckSize, logger: slog.Default()}
}

func (r *Repository) Store(ctx context.Context, mm model.MovieMeta) error {
	movieDB := FromDomain(mm)

	query := `
		INSERT INTO movies (id, title, genres, year, rating)
		VALUES (:id, :title, :genres, :year, :rating)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			genres = EXCLUDED.genres,
			year = EXCLUDED.year,
			rating = EXCLUDED.rating
	`

	_, err := r.db.NamedExecContext(ctx, query, movieDB)
	if err != nil {
		return fmt.Errorf("failed to store movie: %w", err)
	}

	return nil
}

// Seed stores the movies only when the table is empty.
func (r *Repository) Seed(ctx context.Context, movies []model.MovieMeta) error {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM movies`); err != nil {
		return fmt.Errorf("failed to count movies: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, mm := range movies {
		if err := r.Store(ctx, mm); err != nil {
			return err
		}
	}
	return nil
}

// GetDeck lists the genre's movies best rated first, ties by id.
func (r *Repository) GetDeck(ctx context.Context, genre string) (model.Deck, error) {
	genre, ok := model.CanonicalGenre(genre)
	if !ok {
		return nil, model.ErrInvalidGenre
	}

	query := `
		SELECT id
		FROM movies
		WHERE $1 = ANY(genres)
		ORDER BY rating DESC, id
		LIMIT $2
	`

	limit := sql.NullInt64{Int64: int64(r.deckSize), Valid: r.deckSize > 0}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, genre, limit); err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	if len(ids) == 0 {
		return nil, model.ErrInvalidGenre
	}

	return lo.Map(ids, func(id string, _ int) model.MovieID {
		return model.MovieID(id)
	}), nil
}

func (r *Repository) Movie(ctx context.Context, id model.MovieID) (model.MovieMeta, bool) {
	var movieDB MovieDB

	query := `
		SELECT id, title, genres, year, rating
		FROM movies
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &movieDB, query, string(id)); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			r.logger.Error("failed to load movie", slog.String("movie_id", string(id)), slog.String("error", err.Error()))
		}
		return model.MovieMeta{}, false
	}
	return movieDB.ToDomain(), true
}
