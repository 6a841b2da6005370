// Package middleware provides the HTTP middleware chain of the API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/interfaces/http/dto"
)

// Context keys shared by the middleware chain
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"

	// MaxRequestIDLength caps client supplied request IDs
	MaxRequestIDLength = 128
)

// abortWithError stops the chain with the standard error body
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetRequestID returns the request ID assigned by RequestID, falling back to
// the inbound header when the middleware did not run
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	id := c.GetHeader(RequestIDHeader)
	if len(id) > MaxRequestIDLength {
		return id[:MaxRequestIDLength]
	}
	return id
}
