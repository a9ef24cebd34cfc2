package infra_qdrant_catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/humanbelnik/kinoswap/matchroom/internal/config"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/qdrant/go-client/qdrant"
	"github.com/samber/lo"
	"google.golang.org/grpc"
)

// Points is the part of *qdrant.Client the catalog reads with.
type Points interface {
	Scroll(ctx context.Context, request *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, error)
	Get(ctx context.Context, request *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error)
}

type Repository struct {
	points     Points
	collection string
	deckSize   int
	logger     *slog.Logger
}

func MustEstablishConn(cfg config.Qdrant) *qdrant.Client {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		GrpcOptions: []grpc.DialOption{
			grpc.WithUserAgent("matchroom"),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("qdrant connect: %v", err))
	}
	return client
}

func New(points Points, collection string, deckSize int) *Repository {
	return &Repository{
		points:     points,
		collection: collection,
		deckSize:   deckSize,
		logger:     slog.Default(),
	}
}

// GetDeck scrolls the points whose "genres" payload holds the genre, in point id order.
func (r *Repository) GetDeck(ctx context.Context, genre string) (model.Deck, error) {
	genre, ok := model.CanonicalGenre(genre)
	if !ok {
		return nil, model.ErrInvalidGenre
	}

	request := &qdrant.ScrollPoints{
		CollectionName: r.collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("genres", genre),
			},
		},
		WithPayload: qdrant.NewWithPayload(false),
	}
	if r.deckSize > 0 {
		request.Limit = qdrant.PtrOf(uint32(r.deckSize))
	}

	points, err := r.points.Scroll(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("scroll deck: %w", err)
	}
	if len(points) == 0 {
		return nil, model.ErrInvalidGenre
	}

	return lo.Map(points, func(p *qdrant.RetrievedPoint, _ int) model.MovieID {
		return movieID(p.GetId())
	}), nil
}

func (r *Repository) Movie(ctx context.Context, id model.MovieID) (model.MovieMeta, bool) {
	points, err := r.points.Get(ctx, &qdrant.GetPoints{
		CollectionName: r.collection,
		Ids:            []*qdrant.PointId{pointID(id)},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		r.logger.Error("failed to load movie", slog.String("movie_id", string(id)), slog.String("error", err.Error()))
		return model.MovieMeta{}, false
	}
	if len(points) == 0 {
		return model.MovieMeta{}, false
	}
	return toMeta(points[0]), true
}

func toMeta(p *qdrant.RetrievedPoint) model.MovieMeta {
	payload := p.GetPayload()
	meta := model.MovieMeta{
		ID:     movieID(p.GetId()),
		Title:  payload["title"].GetStringValue(),
		Year:   int(payload["year"].GetIntegerValue()),
		Rating: payload["rating"].GetDoubleValue(),
	}
	for _, v := range payload["genres"].GetListValue().GetValues() {
		meta.Genres = append(meta.Genres, v.GetStringValue())
	}
	return meta
}

func movieID(id *qdrant.PointId) model.MovieID {
	if uuid := id.GetUuid(); uuid != "" {
		return model.MovieID(uuid)
	}
	return model.MovieID(strconv.FormatUint(id.GetNum(), 10))
}

func pointID(id model.MovieID) *qdrant.PointId {
	if num, err := strconv.ParseUint(string(id), 10, 64); err == nil {
		return qdrant.NewIDNum(num)
	}
	return qdrant.NewID(string(id))
}
