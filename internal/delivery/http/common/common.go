package http_common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
)

const TokenHeader = "X-user-token"

type ErrorResponse struct {
	Message string `json:"message"`
}

// Status maps a usecase error kind to its HTTP status and a client-facing message.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInternal):
		return http.StatusInternalServerError, "internal error"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, model.ErrRoomFull):
		return http.StatusConflict, "room is full"
	case errors.Is(err, model.ErrInvalidDecision):
		return http.StatusUnprocessableEntity, "invalid decision"
	case errors.Is(err, model.ErrInvalidGenre):
		return http.StatusUnprocessableEntity, "invalid genre"
	case errors.Is(err, model.ErrRoomClosed):
		return http.StatusGone, "room is closed"
	case errors.Is(err, model.ErrCodeGenerationExhausted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, model.ErrNotParticipant):
		return http.StatusForbidden, "not a participant"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func AbortWithError(ctx *gin.Context, err error) {
	status, message := Status(err)
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

func BadRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: message})
}
