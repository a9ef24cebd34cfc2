package ws_room_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	ws_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/ws/room"
	infra_catalog "github.com/humanbelnik/kinoswap/matchroom/internal/infra/catalog"
	infra_memory "github.com/humanbelnik/kinoswap/matchroom/internal/infra/memory"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/eventbus"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/identity"
	usecase_room "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/room"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type StreamSuite struct {
	suite.Suite
}

func newServer() (*httptest.Server, *usecase_room.Usecase) {
	gin.SetMode(gin.TestMode)

	store := infra_memory.New()
	rooms := usecase_room.New(store, infra_catalog.NewStatic(50), eventbus.New(), store, store)
	ids := identity.New(infra_memory.NewSessionCache(), time.Hour)

	engine := gin.New()
	ws_room.NewController(rooms, ids).RegisterRoutes(engine.Group("/api/v1"))

	server := httptest.NewServer(engine)
	return server, rooms
}

func dial(server *httptest.Server, roomID, token string) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/rooms/" + roomID + "/ws?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func readMessage(t provider.T, conn *websocket.Conn) ws_room.Message {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws_room.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func (s *StreamSuite) TestSnapshotThenEventsUntilClosed(t provider.T) {
	server, rooms := newServer()
	defer server.Close()
	ctx := context.Background()

	room, err := rooms.CreateRoom(ctx, "Horror", "alice")
	require.NoError(t, err)

	conn, _, err := dial(server, room.ID.String(), "alice")
	require.NoError(t, err)
	defer conn.Close()

	snapshot := readMessage(t, conn)
	require.Equal(t, ws_room.MessageSnapshot, snapshot.Type)
	require.NotNil(t, snapshot.Snapshot)
	assert.Equal(t, "OPEN", snapshot.Snapshot.Room.Status)
	assert.Equal(t, model.Handle(room.ID, "alice"), snapshot.Snapshot.Room.You)

	_, err = rooms.JoinRoom(ctx, room.Code, "bob")
	require.NoError(t, err)

	joined := readMessage(t, conn)
	require.Equal(t, ws_room.MessageEvent, joined.Type)
	require.NotNil(t, joined.Event)
	assert.Equal(t, model.EventParticipantJoined, joined.Event.Type)
	assert.Greater(t, joined.Event.Seq, snapshot.Snapshot.Seq)
	assert.Equal(t, model.Handle(room.ID, "bob"), joined.Event.Payload.Participant)
	assert.NotContains(t, joined.Event.Payload.Participants, "alice")
	assert.NotContains(t, joined.Event.Payload.Participants, "bob")

	_, err = rooms.Close(ctx, room.ID)
	require.NoError(t, err)

	closed := readMessage(t, conn)
	require.NotNil(t, closed.Event)
	assert.Equal(t, model.EventRoomClosed, closed.Event.Type)
	assert.Equal(t, joined.Event.Seq+1, closed.Event.Seq)
}

func (s *StreamSuite) TestHandshakeRejections(t provider.T) {
	server, rooms := newServer()
	defer server.Close()

	room, err := rooms.CreateRoom(context.Background(), "Horror", "alice")
	require.NoError(t, err)

	_, resp, err := dial(server, room.ID.String(), "mallory")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, resp, err = dial(server, "not-a-uuid", "alice")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, err = rooms.Close(context.Background(), room.ID)
	require.NoError(t, err)

	_, resp, err = dial(server, room.ID.String(), "alice")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestStreamSuite(t *testing.T) {
	suite.RunSuite(t, new(StreamSuite))
}
