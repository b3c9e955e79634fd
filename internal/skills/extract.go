package skills

import (
	"strings"

	"github.com/amishk599/jdprep/internal/model"
)

// Extract scans text with the Default taxonomy.
func Extract(text string) model.ExtractedSkills {
	return Default.Extract(text)
}

// Extract returns the keywords found in text, grouped by category in taxonomy
// order. Matching is case-insensitive over whole tokens. When nothing
// matches, Other holds FallbackSkills.
func (t *Taxonomy) Extract(text string) model.ExtractedSkills {
	lower := strings.ToLower(text)
	found := model.NewExtractedSkills()

	total := 0
	for _, c := range model.Categories {
		for _, m := range t.matchers[c] {
			if m.re.MatchString(lower) {
				found[c] = append(found[c], m.keyword)
				total++
			}
		}
	}

	if total == 0 {
		found[model.CategoryOther] = append([]string(nil), FallbackSkills...)
	}
	return found
}
