package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/dto"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is refused with 413 before the handler runs; a streamed body is cut
// off by the reader and surfaces as a bind error. A cap of zero disables it.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := c.Request.Body
		if maxBytes <= 0 || body == nil || body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBodyTooLarge,
				"Request body exceeds maximum allowed size")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, body, maxBytes)
		c.Next()
	}
}
