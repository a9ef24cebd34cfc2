package usecase_room

import (
	"testing"

	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRandomCodesShape(t *testing.T) {
	gen := RandomCodes{}
	for range 1000 {
		code := gen.Generate()
		assert.True(t, model.IsValidCode(code), code)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}
