package http_session_middleware

import (
	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/common"
	"github.com/humanbelnik/kinoswap/matchroom/internal/model"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/identity"
)

const participantKey = "participant"

type Middleware struct {
	identity *identity.Service
}

func New(identity *identity.Service) *Middleware {
	return &Middleware{identity: identity}
}

// Optional resolves the caller token, minting one for first-time callers and
// echoing it back in the response header.
func (m *Middleware) Optional() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p, fresh := m.identity.Resolve(ctx.GetHeader(http_common.TokenHeader))
		if fresh {
			ctx.Header(http_common.TokenHeader, string(p))
		}
		ctx.Set(participantKey, p)
		ctx.Next()
	}
}

// Peek resolves the caller token when one is sent. It never mints.
func (m *Middleware) Peek() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := ctx.GetHeader(http_common.TokenHeader); token != "" {
			p, _ := m.identity.Resolve(token)
			ctx.Set(participantKey, p)
		}
		ctx.Next()
	}
}

// Required rejects callers without a token.
func (m *Middleware) Required() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader(http_common.TokenHeader)
		if token == "" {
			http_common.AbortWithError(ctx, model.ErrNotParticipant)
			return
		}
		p, _ := m.identity.Resolve(token)
		ctx.Set(participantKey, p)
		ctx.Next()
	}
}

func Participant(ctx *gin.Context) model.ParticipantID {
	p, _ := ctx.Get(participantKey)
	participant, _ := p.(model.ParticipantID)
	return participant
}
