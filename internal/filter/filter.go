package filter

import (
	"strings"

	"github.com/amishk599/jdprep/internal/model"
)

// CompanyAndSkillFilter selects saved analyses by company and detected skill.
// Company keywords match as case-insensitive substrings; skill keywords must
// equal a detected skill (case-insensitive), so "java" does not select a
// javascript-only analysis. Empty keyword lists are treated as "match all".
type CompanyAndSkillFilter struct {
	companies []string
	skills    []string
}

// NewCompanyAndSkillFilter returns a filter that requires both a company
// keyword match and a skill match.
func NewCompanyAndSkillFilter(companies []string, skills []string) *CompanyAndSkillFilter {
	return &CompanyAndSkillFilter{
		companies: lowerAll(companies),
		skills:    lowerAll(skills),
	}
}

// Match returns true if the analysis's company contains any company keyword
// and its detected skills include any skill keyword.
func (f *CompanyAndSkillFilter) Match(r model.AnalysisResult) bool {
	if len(f.companies) > 0 {
		companyLower := strings.ToLower(r.Company)
		matched := false
		for _, kw := range f.companies {
			if strings.Contains(companyLower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.skills) > 0 {
		matched := false
		for _, s := range r.FlatSkills {
			for _, kw := range f.skills {
				if strings.ToLower(s) == kw {
					matched = true
					break
				}
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the matching analyses in their original order.
func (f *CompanyAndSkillFilter) Apply(items []model.AnalysisResult) []model.AnalysisResult {
	out := make([]model.AnalysisResult, 0, len(items))
	for _, r := range items {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func lowerAll(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
