package http_swipe_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/middleware/session"
	http_swipe "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/swipe"
	infra_catalog "github.com/humanbelnik/kinoswap/matchroom/internal/infra/catalog"
	infra_memory "github.com/humanbelnik/kinoswap/matchroom/internal/infra/memory"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/humanbelnik/kinoswap/matchroom/internal/pkg/keylock"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/eventbus"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/identity"
	usecase_match "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/match"
	usecase_room "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/room"
	usecase_swipe "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/swipe"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SwipeControllerSuite struct {
	suite.Suite
}

type fixture struct {
	engine *gin.Engine
	rooms  *usecase_room.Usecase
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	store := infra_memory.New()
	bus := eventbus.New()
	locks := keylock.New[uuid.UUID]()
	ids := identity.New(infra_memory.NewSessionCache(), time.Hour)

	matches := usecase_match.New(store, store, bus)
	swipes := usecase_swipe.New(store, store, matches, bus, usecase_swipe.WithRoomLocks(locks))
	rooms := usecase_room.New(store, infra_catalog.NewStatic(50), bus, store, store, usecase_room.WithLocks(locks))

	engine := gin.New()
	http_swipe.New(swipes, matches, http_session_middleware.New(ids)).RegisterRoutes(engine.Group("/api/v1"))
	return &fixture{engine: engine, rooms: rooms}
}

func (f *fixture) activeRoom(t provider.T) model.Room {
	ctx := context.Background()
	room, err := f.rooms.CreateRoom(ctx, "Drama", "alice")
	require.NoError(t, err)
	room, err = f.rooms.JoinRoom(ctx, room.Code, "bob")
	require.NoError(t, err)
	return room
}

func (f *fixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(http_common.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func swipesPath(room model.Room) string {
	return "/api/v1/rooms/" + room.ID.String() + "/swipes"
}

func (s *SwipeControllerSuite) TestMutualLikeIsListedAsMatch(t provider.T) {
	f := newFixture()
	room := f.activeRoom(t)
	movie := string(room.Deck[0])

	first := f.do(http.MethodPost, swipesPath(room), "alice", http_swipe.SwipeRequestDTO{MovieID: movie, Decision: "LIKE"})
	require.Equal(t, http.StatusOK, first.Code)

	empty := f.do(http.MethodGet, "/api/v1/rooms/"+room.ID.String()+"/matches", "", nil)
	require.Equal(t, http.StatusOK, empty.Code)
	assert.JSONEq(t, "[]", empty.Body.String())

	second := f.do(http.MethodPost, swipesPath(room), "bob", http_swipe.SwipeRequestDTO{MovieID: movie, Decision: "LIKE"})
	require.Equal(t, http.StatusOK, second.Code)

	listed := f.do(http.MethodGet, "/api/v1/rooms/"+room.ID.String()+"/matches", "", nil)
	require.Equal(t, http.StatusOK, listed.Code)

	var matches []http_swipe.MatchDTO
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, movie, matches[0].MovieID)
	assert.ElementsMatch(t, []string{model.Handle(room.ID, "alice"), model.Handle(room.ID, "bob")}, matches[0].Participants)
	assert.NotContains(t, listed.Body.String(), "alice")
	assert.NotContains(t, listed.Body.String(), "bob")
}

func (s *SwipeControllerSuite) TestRepeatedSwipeKeepsFirstDecision(t provider.T) {
	f := newFixture()
	room := f.activeRoom(t)
	movie := string(room.Deck[1])

	first := f.do(http.MethodPost, swipesPath(room), "alice", http_swipe.SwipeRequestDTO{MovieID: movie, Decision: "SKIP"})
	require.Equal(t, http.StatusOK, first.Code)

	again := f.do(http.MethodPost, swipesPath(room), "alice", http_swipe.SwipeRequestDTO{MovieID: movie, Decision: "LIKE"})
	require.Equal(t, http.StatusOK, again.Code)

	var stored http_swipe.SwipeDTO
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &stored))
	assert.Equal(t, "SKIP", stored.Decision)

	history := f.do(http.MethodGet, swipesPath(room), "alice", nil)
	require.Equal(t, http.StatusOK, history.Code)
	var swipes []http_swipe.SwipeDTO
	require.NoError(t, json.Unmarshal(history.Body.Bytes(), &swipes))
	require.Len(t, swipes, 1)
	assert.Equal(t, movie, swipes[0].MovieID)
}

func (s *SwipeControllerSuite) TestRejections(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		token    string
		body     http_swipe.SwipeRequestDTO
		closed   bool
		expected int
	}{
		{name: "Should require token", body: http_swipe.SwipeRequestDTO{MovieID: "11", Decision: "LIKE"}, expected: http.StatusForbidden},
		{name: "Should reject stranger", token: "carol", body: http_swipe.SwipeRequestDTO{MovieID: "11", Decision: "LIKE"}, expected: http.StatusForbidden},
		{name: "Should reject unknown decision", token: "alice", body: http_swipe.SwipeRequestDTO{MovieID: "11", Decision: "MAYBE"}, expected: http.StatusUnprocessableEntity},
		{name: "Should reject movie outside deck", token: "alice", body: http_swipe.SwipeRequestDTO{MovieID: "does-not-exist", Decision: "LIKE"}, expected: http.StatusUnprocessableEntity},
		{name: "Should reject swipe in closed room", token: "alice", body: http_swipe.SwipeRequestDTO{MovieID: "11", Decision: "LIKE"}, closed: true, expected: http.StatusGone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			f := newFixture()
			room := f.activeRoom(t)
			if tc.closed {
				_, err := f.rooms.Close(context.Background(), room.ID)
				require.NoError(t, err)
			}

			rec := f.do(http.MethodPost, swipesPath(room), tc.token, tc.body)
			assert.Equal(t, tc.expected, rec.Code)
		})
	}
}

func (s *SwipeControllerSuite) TestUnknownRoom(t provider.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/v1/rooms/"+uuid.NewString()+"/swipes", "alice", http_swipe.SwipeRequestDTO{MovieID: "11", Decision: "LIKE"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/rooms/garbage/matches", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSwipeControllerSuite(t *testing.T) {
	suite.RunSuite(t, new(SwipeControllerSuite))
}
