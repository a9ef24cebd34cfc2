package http_common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := map[error]int{
		model.ErrNotFound:                                     http.StatusNotFound,
		model.ErrRoomFull:                                     http.StatusConflict,
		model.ErrInvalidDecision:                              http.StatusUnprocessableEntity,
		model.ErrInvalidGenre:                                 http.StatusUnprocessableEntity,
		model.ErrRoomClosed:                                   http.StatusGone,
		model.ErrCodeGenerationExhausted:                      http.StatusServiceUnavailable,
		model.ErrNotParticipant:                               http.StatusForbidden,
		errors.Join(model.ErrInternal, errors.New("db down")): http.StatusInternalServerError,
		errors.New("unexpected"):                              http.StatusInternalServerError,
	}

	for err, want := range cases {
		got, _ := Status(err)
		assert.Equal(t, want, got, err.Error())
	}
}
