package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/vmihailenco/msgpack/v5"
)

type payload struct {
	Name string `json:"name" msgpack:"name"`
}

func newContext(accept string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if accept != "" {
		c.Request.Header.Set("Accept", accept)
	}
	return c, resp
}

func TestNegotiateDefaultsToJSON(t *testing.T) {
	c, resp := newContext("")
	Negotiate(c, http.StatusOK, payload{Name: "a"})

	if got := resp.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	if resp.Body.String() != `{"name":"a"}` {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestNegotiateMsgPack(t *testing.T) {
	c, resp := newContext("application/x-msgpack;q=0.9, application/json;q=0.1")
	Negotiate(c, http.StatusOK, payload{Name: "a"})

	if got := resp.Header().Get("Content-Type"); got != MIMEMsgPack {
		t.Fatalf("unexpected content type %q", got)
	}
	var decoded payload
	if err := msgpack.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}
	if decoded.Name != "a" {
		t.Fatalf("unexpected decoded payload %+v", decoded)
	}
}

func TestErrorAttachesCause(t *testing.T) {
	c, resp := newContext("")
	Error(c, http.StatusBadRequest, "bad input", errors.New("boom"))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if resp.Body.String() != `{"error":"bad input"}` {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if len(c.Errors) != 1 || c.Errors[0].Err.Error() != "boom" {
		t.Fatalf("expected cause on context, got %v", c.Errors)
	}
	if !c.IsAborted() {
		t.Fatal("expected context aborted")
	}
}
