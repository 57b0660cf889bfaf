package analyses

import "resume-analyzer/internal/uploads"

// Result is the outcome of one resume/job description comparison.
type Result struct {
	Skills     []string `json:"skills" msgpack:"skills"`
	Experience []string `json:"experience" msgpack:"experience"`
	Score      float64  `json:"score" msgpack:"score"`
}

// Response is the body of a successful POST /analyze.
type Response struct {
	Feedback Result `json:"feedback" msgpack:"feedback"`
}

// Input carries the two uploaded documents.
type Input struct {
	ID             string
	Resume         uploads.Source
	JobDescription uploads.Source
}
