package usecase_room

import (
	"math/rand/v2"
	"strings"

	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
)

// RandomCodes draws codes from the unambiguous alphabet (no 0/O, 1/I).
type RandomCodes struct{}

func (RandomCodes) Generate() string {
	var builder strings.Builder
	builder.Grow(model.CodeLen)

	for range model.CodeLen {
		builder.WriteByte(model.CodeAlphabet[rand.IntN(len(model.CodeAlphabet))])
	}

	return builder.String()
}
