package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key under which the request ID is
// stored for buildMetadata and the loggers.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags every request with an ID. A caller-supplied
// X-Request-ID is honored so a frontend can correlate a submission with the
// breakdown it later receives; otherwise a fresh UUID is minted. The ID is
// echoed back in the response header either way.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
