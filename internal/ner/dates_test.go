package ner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dateTexts(ents []Entity) []string {
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		out = append(out, e.Text)
	}
	return out
}

func TestFindDates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "year range", in: "Python developer with React experience, 2021-2023", want: []string{"2021-2023"}},
		{name: "open range", in: "Backend engineer, Jan 2020 - Present", want: []string{"Jan 2020 - Present"}},
		{name: "numeric month", in: "Since 03/2019 at Acme", want: []string{"03/2019"}},
		{name: "duration", in: "5 years of Go and 6 months of Rust", want: []string{"5 years", "6 months"}},
		{name: "duration plus", in: "10+ years building APIs", want: []string{"10+ years"}},
		{name: "word range", in: "March 2015 to September 2017", want: []string{"March 2015 to September 2017"}},
		{name: "en dash", in: "2016–2018", want: []string{"2016–2018"}},
		{name: "duplicates kept", in: "2019 then again 2019", want: []string{"2019", "2019"}},
		{name: "not a year", in: "Handled 3000 requests and 110 years", want: []string{}},
		{name: "empty", in: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDates(tt.in)
			assert.Equal(t, tt.want, dateTexts(got))
			for _, e := range got {
				assert.Equal(t, LabelDate, e.Label)
				assert.Equal(t, e.Text, tt.in[e.Start:e.End])
			}
		})
	}
}
