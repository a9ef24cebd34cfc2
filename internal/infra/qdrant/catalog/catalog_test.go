package infra_qdrant_catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type QdrantCatalogSuite struct {
	suite.Suite
}

type fakePoints struct {
	scrolled *qdrant.ScrollPoints
	points   []*qdrant.RetrievedPoint
	err      error
}

func (f *fakePoints) Scroll(_ context.Context, request *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, error) {
	f.scrolled = request
	return f.points, f.err
}

func (f *fakePoints) Get(_ context.Context, request *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*qdrant.RetrievedPoint
	for _, p := range f.points {
		for _, id := range request.GetIds() {
			if p.GetId().GetNum() == id.GetNum() && p.GetId().GetUuid() == id.GetUuid() {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func point(num uint64, title string, genres ...any) *qdrant.RetrievedPoint {
	return &qdrant.RetrievedPoint{
		Id: qdrant.NewIDNum(num),
		Payload: qdrant.NewValueMap(map[string]any{
			"title":  title,
			"year":   2014,
			"rating": 8.1,
			"genres": genres,
		}),
	}
}

func (s *QdrantCatalogSuite) TestGetDeck(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		genre         string
		points        []*qdrant.RetrievedPoint
		err           error
		expected      model.Deck
		expectedError error
	}{
		{
			name:     "Should map point ids to deck",
			genre:    "drama",
			points:   []*qdrant.RetrievedPoint{point(3, "The Dark Knight"), point(7, "The Grand Budapest Hotel")},
			expected: model.Deck{"3", "7"},
		},
		{
			name:          "Should reject unknown genre",
			genre:         "Opera",
			expectedError: model.ErrInvalidGenre,
		},
		{
			name:          "Should reject genre without points",
			genre:         "Horror",
			expectedError: model.ErrInvalidGenre,
		},
		{
			name:          "Should pass through client failure",
			genre:         "Drama",
			err:           errors.New("unavailable"),
			expectedError: errors.New("scroll deck"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			fake := &fakePoints{points: tc.points, err: tc.err}
			repo := New(fake, "movies", 10)

			deck, err := repo.GetDeck(context.Background(), tc.genre)

			switch {
			case tc.expectedError == nil:
				require.NoError(t, err)
				assert.Equal(t, tc.expected, deck)
				assert.Equal(t, "movies", fake.scrolled.GetCollectionName())
				assert.Equal(t, uint32(10), fake.scrolled.GetLimit())
				assert.Equal(t, "Drama", fake.scrolled.GetFilter().GetMust()[0].GetField().GetMatch().GetKeyword())
			case errors.Is(tc.expectedError, model.ErrInvalidGenre):
				assert.ErrorIs(t, err, model.ErrInvalidGenre)
			default:
				assert.ErrorContains(t, err, tc.expectedError.Error())
			}
		})
	}
}

func (s *QdrantCatalogSuite) TestMovie(t provider.T) {
	fake := &fakePoints{points: []*qdrant.RetrievedPoint{point(7, "The Grand Budapest Hotel", "Comedy", "Drama")}}
	repo := New(fake, "movies", 10)

	movie, ok := repo.Movie(context.Background(), "7")
	require.True(t, ok)
	assert.Equal(t, "The Grand Budapest Hotel", movie.Title)
	assert.Equal(t, []string{"Comedy", "Drama"}, movie.Genres)
	assert.Equal(t, 2014, movie.Year)

	_, ok = repo.Movie(context.Background(), "8")
	assert.False(t, ok)
}

func TestQdrantCatalogSuite(t *testing.T) {
	suite.RunSuite(t, new(QdrantCatalogSuite))
}
