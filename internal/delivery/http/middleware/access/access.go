package http_access_middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/common"
)

const (
	ModeReadWrite = "RW"
	ModeReadOnly  = "RO"
)

// ReadOnly lets only GET through on a read-only instance. Snapshots, decks and
// room streams keep working there while writes go to a primary.
func ReadOnly(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mode != ModeReadOnly {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "write operations not allowed on read-only instance",
		})
	}
}
