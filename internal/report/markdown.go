// Package report renders analysis results for humans.
package report

import (
	"bytes"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

// Summary is the data a report shows.
type Summary struct {
	Skills     []string
	Experience []string
	Score      float64
}

// WriteMarkdown writes s to w as a GitHub flavored markdown document.
func WriteMarkdown(w io.Writer, s Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1("Resume Analysis")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Match score", strconv.FormatFloat(s.Score, 'f', 2, 64) + " / 100"},
			{"Skills found", strconv.Itoa(len(s.Skills))},
			{"Experience entries", strconv.Itoa(len(s.Experience))},
		},
	})
	md.PlainText("")

	writeList(md, "Skills", s.Skills, "No skills were recognized in the resume.")
	writeList(md, "Experience", s.Experience, "No dates or durations were recognized in the resume.")

	return md.Build()
}

// Markdown returns the report as a string.
func Markdown(s Summary) (string, error) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeList(md *markdown.Markdown, title string, items []string, empty string) {
	md.H2(title)
	md.PlainText("")
	if len(items) == 0 {
		md.Note(empty)
		md.PlainText("")
		return
	}
	md.BulletList(items...)
	md.PlainText("")
}
