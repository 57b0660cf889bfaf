package analyses

import "errors"

var (
	ErrMissingInput   = errors.New("resume or job description missing")
	ErrNoFileSelected = errors.New("file not selected")
	ErrUploadTooLarge = errors.New("upload too large")
)

// Client facing messages.
const (
	msgMissingInput    = "Resume or Job Description file missing"
	msgNoFileSelected  = "One or more files not selected"
	msgUploadTooLarge  = "Upload too large"
	msgInvalidResume   = "Resume could not be read as a PDF"
	msgInvalidJob      = "Job description must be UTF-8 text"
	msgUnexpectedError = "Unexpected server error"
)
