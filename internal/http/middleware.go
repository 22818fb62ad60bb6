package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/audit"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// ContextKeyRequestID holds the request id in the Gin context.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags each request with an id and seeds the audit actor.
// A well-formed UUID sent by the client is reused; anything else is replaced.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = newRequestID()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		actor := audit.ActorFrom(c.Request.Context())
		actor.RequestID = requestID
		actor.IPAddress = c.ClientIP()
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
