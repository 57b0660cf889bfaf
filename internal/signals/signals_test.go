package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-analyzer/internal/ner"
)

func TestSkillsDeduplicatesAndSorts(t *testing.T) {
	ents := []ner.Entity{
		{Text: "React", Label: ner.LabelProduct},
		{Text: "Google", Label: ner.LabelOrg},
		{Text: "2021", Label: ner.LabelDate},
		{Text: "React", Label: ner.LabelProduct},
		{Text: "Alice", Label: "PERSON"},
		{Text: "Docker", Label: ner.LabelProduct},
	}
	assert.Equal(t, []string{"Docker", "Google", "React"}, Skills(ents))
}

func TestExperienceKeepsOrderAndDuplicates(t *testing.T) {
	ents := []ner.Entity{
		{Text: "2021-2023", Label: ner.LabelDate},
		{Text: "Go", Label: ner.LabelProduct},
		{Text: "2019", Label: ner.LabelDate},
		{Text: "2021-2023", Label: ner.LabelDate},
	}
	assert.Equal(t, []string{"2021-2023", "2019", "2021-2023"}, Experience(ents))
}

func TestEmptyInputsGiveEmptyLists(t *testing.T) {
	assert.NotNil(t, Skills(nil))
	assert.Empty(t, Skills(nil))
	assert.NotNil(t, Experience(nil))
	assert.Empty(t, Experience(nil))
}
