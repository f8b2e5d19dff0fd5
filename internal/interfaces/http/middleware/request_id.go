package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"booked-barber.backend/pkg/utils"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware tags every request with an id, honoring one supplied
// by an upstream proxy, and echoes it back in the response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = utils.GenerateUUIDv7().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		// The logger reads the id from the request context under the
		// plain string key.
		ctx := context.WithValue(c.Request.Context(), RequestIDKey, id) //nolint:staticcheck
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
