package http_swipe

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/middleware/session"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	usecase_match "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/match"
	usecase_swipe "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/swipe"
	"github.com/samber/lo"
)

type Controller struct {
	swipes  *usecase_swipe.Usecase
	matches *usecase_match.Usecase
	session *http_session_middleware.Middleware
	logger  *slog.Logger
}

func New(
	swipes *usecase_swipe.Usecase,
	matches *usecase_match.Usecase,
	session *http_session_middleware.Middleware,
) *Controller {
	return &Controller{
		swipes:  swipes,
		matches: matches,
		session: session,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms/:room_id")
	{
		rooms.POST("/swipes", c.session.Required(), c.record)
		rooms.GET("/swipes", c.session.Required(), c.history)
		rooms.GET("/matches", c.list)
	}
}

type SwipeRequestDTO struct {
	MovieID  string `json:"movie_id" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=LIKE SKIP"`
}

type SwipeDTO struct {
	MovieID   string    `json:"movie_id"`
	Decision  string    `json:"decision"`
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchDTO names the pair by handle.
type MatchDTO struct {
	MovieID      string    `json:"movie_id"`
	MatchedAt    time.Time `json:"matched_at"`
	Participants []string  `json:"participants"`
}

func toSwipeDTO(d model.SwipeDecision) SwipeDTO {
	return SwipeDTO{
		MovieID:   string(d.MovieID),
		Decision:  string(d.Decision),
		Seq:       d.Seq,
		CreatedAt: d.CreatedAt,
	}
}

// record accepts a LIKE or SKIP. Repeating a swipe returns the first decision.
func (c *Controller) record(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		http_common.AbortWithError(ctx, model.ErrNotFound)
		return
	}

	var req SwipeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.AbortWithError(ctx, model.ErrInvalidDecision)
		return
	}

	p := http_session_middleware.Participant(ctx)
	d, err := c.swipes.RecordSwipe(ctx, roomID, p, model.MovieID(req.MovieID), model.Decision(req.Decision))
	if err != nil {
		if errors.Is(err, model.ErrInternal) {
			c.logger.Error("failed to record swipe", slog.String("room_id", roomID.String()), slog.String("error", err.Error()))
		}
		http_common.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toSwipeDTO(d))
}

func (c *Controller) history(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		http_common.AbortWithError(ctx, model.ErrNotFound)
		return
	}

	history, err := c.swipes.History(ctx, roomID, http_session_middleware.Participant(ctx))
	if err != nil {
		http_common.AbortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lo.Map(history, func(d model.SwipeDecision, _ int) SwipeDTO { return toSwipeDTO(d) }))
}

func (c *Controller) list(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		http_common.AbortWithError(ctx, model.ErrNotFound)
		return
	}

	matches, err := c.matches.Matches(ctx, roomID)
	if err != nil {
		http_common.AbortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lo.Map(matches, func(m model.Match, _ int) MatchDTO {
		return MatchDTO{
			MovieID:      string(m.MovieID),
			MatchedAt:    m.MatchedAt,
			Participants: model.Handles(m.RoomID, m.ParticipantIDs[:]),
		}
	}))
}
