package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/server/respond"
)

// Status is the body of GET /health.
type Status struct {
	OK     bool   `json:"ok" msgpack:"ok"`
	Tagger string `json:"tagger" msgpack:"tagger"`
}

// Service encapsulates health-related checks.
type Service struct {
	tagger string
}

// NewService constructs a health service reporting the active tagger.
func NewService(tagger string) *Service {
	return &Service{tagger: tagger}
}

// Status returns a simple health payload.
func (s *Service) Status() Status {
	return Status{OK: true, Tagger: s.tagger}
}

// RegisterRoutes attaches GET /health.
func (s *Service) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", func(c *gin.Context) {
		respond.Negotiate(c, http.StatusOK, s.Status())
	})
}
