package respond

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error" msgpack:"error"`
}

// Error aborts the request with a JSON error body. A non-nil cause is
// attached to the gin context so the logging middleware can report it;
// it is never sent to the client.
func Error(c *gin.Context, status int, message string, cause error) {
	if cause != nil {
		_ = c.Error(cause)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
