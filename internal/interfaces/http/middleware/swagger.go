package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/dto"
)

// DocsAccess guards the API documentation. Disabled docs answer 404 so
// their presence is not advertised. A non-empty allowedIPs admits only
// those client addresses.
func DocsAccess(enabled bool, allowedIPs []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			abortWithError(c, http.StatusNotFound, dto.ErrCodeNotFound, "Not found")
			return
		}
		if len(allowedIPs) > 0 && !slices.Contains(allowedIPs, c.ClientIP()) {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden,
				"API documentation is not available from this address")
			return
		}
		c.Next()
	}
}
