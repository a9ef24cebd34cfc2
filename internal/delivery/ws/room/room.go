package ws_room

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/common"
	http_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/room"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/identity"
	usecase_room "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/room"
)

type MessageType string

const (
	MessageSnapshot MessageType = "SNAPSHOT"
	MessageEvent    MessageType = "EVENT"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Message is one websocket frame. A SNAPSHOT is sent on connect and after a
// resync; every EVENT that follows has Seq greater than the snapshot's.
type Message struct {
	Type     MessageType         `json:"type"`
	Snapshot *http_room.StateDTO `json:"snapshot,omitempty"`
	Event    *model.Event        `json:"event,omitempty"`
}

type Controller struct {
	usecase  *usecase_room.Usecase
	identity *identity.Service
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewController(usecase *usecase_room.Usecase, identity *identity.Service) *Controller {
	return &Controller{
		usecase:  usecase,
		identity: identity,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rooms/:room_id/ws", c.serve)
}

// serve streams room events to a seated participant. Browsers cannot set
// headers on a websocket handshake, so the token may come as ?token=.
func (c *Controller) serve(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		http_common.AbortWithError(ctx, model.ErrNotFound)
		return
	}

	token := ctx.GetHeader(http_common.TokenHeader)
	if token == "" {
		token = ctx.Query("token")
	}
	if token == "" {
		http_common.AbortWithError(ctx, model.ErrNotParticipant)
		return
	}
	p, _ := c.identity.Resolve(token)

	room, err := c.usecase.RoomByID(ctx, roomID)
	if err != nil {
		http_common.AbortWithError(ctx, err)
		return
	}
	if !room.Seated(p) {
		http_common.AbortWithError(ctx, model.ErrNotParticipant)
		return
	}
	if room.IsClosed() {
		http_common.AbortWithError(ctx, model.ErrRoomClosed)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	session := &client{
		conn:        conn,
		roomID:      roomID,
		participant: p,
		logger:      c.logger.With(slog.String("room_id", roomID.String()), slog.String("participant", model.Handle(roomID, p))),
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	go session.read(cancel)
	go session.ping(streamCtx)

	c.stream(streamCtx, session)
	cancel()
	session.close()
}

// stream subscribes before taking the snapshot, then drops events already
// reflected in it. A lagging subscriber is resynced the same way.
func (c *Controller) stream(ctx context.Context, session *client) {
	for {
		sub, err := c.usecase.Subscribe(ctx, session.roomID)
		if err != nil {
			session.logger.Warn("subscribe failed", slog.String("error", err.Error()))
			return
		}

		state, err := c.usecase.State(ctx, session.roomID)
		if err != nil {
			sub.Close()
			session.logger.Error("snapshot failed", slog.String("error", err.Error()))
			return
		}

		snapshot := http_room.ToStateDTO(state, session.participant)
		if err := session.write(Message{Type: MessageSnapshot, Snapshot: &snapshot}); err != nil {
			sub.Close()
			return
		}

		err = c.forward(ctx, session, sub, state.Seq)
		sub.Close()
		if !errors.Is(err, model.ErrSubscriberLagged) {
			return
		}
		session.logger.Info("subscriber lagged, resyncing")
	}
}

func (c *Controller) forward(ctx context.Context, session *client, sub model.Subscription, after uint64) error {
	for {
		e, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		if e.Seq <= after {
			continue
		}
		if err := session.write(Message{Type: MessageEvent, Event: &e}); err != nil {
			return err
		}
		if e.Type == model.EventRoomClosed {
			return model.ErrTopicClosed
		}
	}
}
