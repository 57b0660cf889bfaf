package analyses

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/report"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
	"resume-analyzer/internal/uploads"
)

const (
	fieldResume         = "resume"
	fieldJobDescription = "jobDescription"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive maxUploadBytes disables
// the body limit.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	in, err := readInput(c)
	if form := c.Request.MultipartForm; form != nil {
		// parts larger than the in-memory limit spill to temp files
		defer func() {
			_ = form.RemoveAll()
		}()
	}
	if err != nil {
		writeError(c, err)
		return
	}
	in.ID = uuid.NewString()
	c.Set("analysisId", in.ID)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.Analyze(ctx, in)
	if err != nil {
		writeError(c, err)
		return
	}

	if respond.Accepts(c, respond.MIMEMarkdown) {
		body, err := report.Markdown(report.Summary{
			Skills:     result.Skills,
			Experience: result.Experience,
			Score:      result.Score,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, respond.MIMEMarkdown+"; charset=utf-8", []byte(body))
		return
	}
	respond.Negotiate(c, http.StatusOK, Response{Feedback: result})
}

// readInput validates the multipart form. Nothing is staged here.
func readInput(c *gin.Context) (Input, error) {
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return Input{}, ErrUploadTooLarge
		}
		return Input{}, errors.Join(ErrMissingInput, err)
	}

	resume, resumeOK := formFile(form, fieldResume)
	job, jobOK := formFile(form, fieldJobDescription)
	if !resumeOK || !jobOK {
		return Input{}, ErrMissingInput
	}
	if resume == nil || job == nil || resume.Filename == "" || job.Filename == "" {
		return Input{}, ErrNoFileSelected
	}

	return Input{
		Resume:         uploads.FromFileHeader(resume),
		JobDescription: uploads.FromFileHeader(job),
	}, nil
}

// formFile reports the file part for field and whether the field was sent
// at all. A part with an empty filename is parsed as a plain value.
func formFile(form *multipart.Form, field string) (*multipart.FileHeader, bool) {
	if files := form.File[field]; len(files) > 0 {
		return files[0], true
	}
	if _, ok := form.Value[field]; ok {
		return nil, true
	}
	return nil, false
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, msgUploadTooLarge, err)
	case errors.Is(err, ErrMissingInput):
		respond.Error(c, http.StatusBadRequest, msgMissingInput, err)
	case errors.Is(err, ErrNoFileSelected):
		respond.Error(c, http.StatusBadRequest, msgNoFileSelected, err)
	case errors.Is(err, extract.ErrInvalidPDF):
		respond.Error(c, http.StatusUnprocessableEntity, msgInvalidResume, err)
	case errors.Is(err, extract.ErrInvalidEncoding):
		respond.Error(c, http.StatusUnprocessableEntity, msgInvalidJob, err)
	default:
		respond.Error(c, http.StatusInternalServerError, msgUnexpectedError, err)
	}
}
