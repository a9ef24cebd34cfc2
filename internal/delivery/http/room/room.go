package http_room

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/middleware/session"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/identity"
	usecase_room "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/room"
)

// MovieLookup resolves deck entries to displayable metadata.
type MovieLookup interface {
	Movie(ctx context.Context, id model.MovieID) (model.MovieMeta, bool)
}

type Controller struct {
	usecase  *usecase_room.Usecase
	identity *identity.Service
	session  *http_session_middleware.Middleware
	movies   MovieLookup
	logger   *slog.Logger
}

func New(
	usecase *usecase_room.Usecase,
	identity *identity.Service,
	session *http_session_middleware.Middleware,
	movies MovieLookup,
) *Controller {
	return &Controller{
		usecase:  usecase,
		identity: identity,
		session:  session,
		movies:   movies,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/genres", c.genres)

	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.session.Optional(), c.create)
		rooms.POST("/join", c.session.Optional(), c.join)
		rooms.GET("/current", c.session.Required(), c.current)
		rooms.GET("/code/:code", c.session.Peek(), c.byCode)
		rooms.GET("/:room_id", c.session.Peek(), c.state)
		rooms.GET("/:room_id/deck", c.deck)
		rooms.POST("/:room_id/leave", c.session.Required(), c.leave)
		rooms.DELETE("/:room_id", c.session.Required(), c.purge)
	}
}

func (c *Controller) genres(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, GenresDTO{Genres: model.Genres})
}

// create opens a room for the caller, who takes the first slot.
// The caller token is returned in X-user-token when it was minted here.
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, "invalid request format")
		return
	}

	p := http_session_middleware.Participant(ctx)
	room, err := c.usecase.CreateRoom(ctx, req.Genre, p)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		http_common.AbortWithError(ctx, err)
		return
	}

	c.bind(ctx, p, room.ID)
	ctx.JSON(http.StatusCreated, ToRoomDTO(room, p))
}

func (c *Controller) join(ctx *gin.Context) {
	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, "invalid request format")
		return
	}

	p := http_session_middleware.Participant(ctx)
	room, err := c.usecase.JoinRoom(ctx, req.Code, p)
	if err != nil {
		c.logger.Warn("failed to join room", slog.String("code", req.Code), slog.String("error", err.Error()))
		http_common.AbortWithError(ctx, err)
		return
	}

	c.bind(ctx, p, room.ID)
	ctx.JSON(http.StatusOK, ToRoomDTO(room, p))
}

// current returns the snapshot of the room the caller token is bound to,
// letting a reloaded tab find its way back.
func (c *Controller) current(ctx *gin.Context) {
	p := http_session_middleware.Participant(ctx)

	roomID, err := c.identity.RoomOf(ctx, p)
	if err != nil {
		if errors.Is(err, identity.ErrUnknownSession) {
			http_common.AbortWithError(ctx, model.ErrNotFound)
			return
		}
		c.logger.Error("failed to resolve session", slog.String("error", err.Error()))
		http_common.AbortWithError(ctx, err)
		return
	}

	state, err := c.usecase.State(ctx, roomID)
	if err != nil {
		http_common.AbortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToStateDTO(state, p))
}

func (c *Controller) byCode(ctx *gin.Context) {
	room, err := c.usecase.RoomByCode(ctx, ctx.Param("code"))
	if err != nil {
		http_common.AbortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToRoomDTO(room, http_session_middleware.Participant(ctx)))
}

func (c *Controller) state(ctx *gin.Context) {
	roomID, ok := roomIDParam(ctx)
	if !ok {
		return
	}

	state, err := c.usecase.State(ctx, roomID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			c.logger.Error("failed to load room state", slog.String("room_id", roomID.String()), slog.String("error", err.Error()))
		}
		http_common.AbortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToStateDTO(state, http_session_middleware.Participant(ctx)))
}

func (c *Controller) deck(ctx *gin.Context) {
	roomID, ok := roomIDParam(ctx)
	if !ok {
		return
	}

	room, err := c.usecase.RoomByID(ctx, roomID)
	if err != nil {
		http_common.AbortWithError(ctx, err)
		return
	}

	movies := make([]MovieDTO, 0, len(room.Deck))
	for _, id := range room.Deck {
		meta, found := c.movies.Movie(ctx, id)
		if !found {
			meta = model.MovieMeta{ID: id}
		}
		movies = append(movies, ToMovieDTO(meta))
	}
	ctx.JSON(http.StatusOK, movies)
}

func (c *Controller) leave(ctx *gin.Context) {
	roomID, ok := roomIDParam(ctx)
	if !ok {
		return
	}

	p := http_session_middleware.Participant(ctx)
	room, err := c.usecase.Leave(ctx, roomID, p)
	if err != nil {
		http_common.AbortWithError(ctx, err)
		return
	}

	if err := c.identity.Forget(ctx, p); err != nil {
		c.logger.Warn("failed to forget session", slog.String("error", err.Error()))
	}
	ctx.JSON(http.StatusOK, ToRoomDTO(room, p))
}

// purge deletes the room with its history. Only a seated participant may do it.
func (c *Controller) purge(ctx *gin.Context) {
	roomID, ok := roomIDParam(ctx)
	if !ok {
		return
	}

	p := http_session_middleware.Participant(ctx)
	room, err := c.usecase.RoomByID(ctx, roomID)
	if err != nil {
		http_common.AbortWithError(ctx, err)
		return
	}
	if !room.Seated(p) {
		http_common.AbortWithError(ctx, model.ErrNotParticipant)
		return
	}

	if err := c.usecase.Purge(ctx, roomID); err != nil {
		c.logger.Error("failed to purge room", slog.String("room_id", roomID.String()), slog.String("error", err.Error()))
		http_common.AbortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) bind(ctx context.Context, p model.ParticipantID, roomID uuid.UUID) {
	if err := c.identity.Bind(ctx, p, roomID); err != nil {
		c.logger.Warn("failed to bind session", slog.String("room_id", roomID.String()), slog.String("error", err.Error()))
	}
}

func roomIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		http_common.AbortWithError(ctx, model.ErrNotFound)
		return uuid.Nil, false
	}
	return roomID, true
}
