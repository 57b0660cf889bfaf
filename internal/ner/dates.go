package ner

import "regexp"

const (
	monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`
	yearPattern  = `(?:19|20)\d{2}`

	// month-year must come before the bare year, Go regexp is leftmost-first.
	pointPattern    = `(?:` + monthPattern + `\s+` + yearPattern + `|\d{1,2}/` + yearPattern + `|` + yearPattern + `)`
	openEndPattern  = `(?:present|current|now|today)`
	rangeSeparator  = `\s*(?:-|–|—|to|until)\s*`
	rangePattern    = pointPattern + rangeSeparator + `(?:` + pointPattern + `|` + openEndPattern + `)`
	durationPattern = `\d{1,2}\+?\s*(?:years?|yrs?|months?)`
)

var dateRe = regexp.MustCompile(`(?i)\b(?:` + rangePattern + `|` + durationPattern + `|` + pointPattern + `)\b`)

// FindDates returns DATE entities for years, month-year points, MM/YYYY,
// ranges between those (or an open end such as "present") and durations
// like "5 years".
func FindDates(text string) []Entity {
	matches := dateRe.FindAllStringIndex(text, -1)
	out := make([]Entity, 0, len(matches))
	for _, m := range matches {
		out = append(out, Entity{
			Text:  text[m[0]:m[1]],
			Label: LabelDate,
			Start: m[0],
			End:   m[1],
		})
	}
	return out
}
