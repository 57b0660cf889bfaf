package respond

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	MIMEMsgPack  = "application/msgpack"
	MIMEXMsgPack = "application/x-msgpack"
	MIMEMarkdown = "text/markdown"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Negotiate writes payload as msgpack when the client asks for it and as
// JSON otherwise.
func Negotiate(c *gin.Context, status int, payload interface{}) {
	if !Accepts(c, MIMEMsgPack, MIMEXMsgPack) {
		JSON(c, status, payload)
		return
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}
	c.Data(status, MIMEMsgPack, data)
}

// Accepts reports whether the Accept header names any of the given types.
func Accepts(c *gin.Context, mimeTypes ...string) bool {
	accept := strings.ToLower(c.GetHeader("Accept"))
	if accept == "" {
		return false
	}
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		for _, m := range mimeTypes {
			if mediaType == m {
				return true
			}
		}
	}
	return false
}
