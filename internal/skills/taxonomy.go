// Package skills detects known technology keywords in job-description text.
package skills

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/amishk599/jdprep/internal/model"
)

var defaultKeywords = map[model.SkillCategory][]string{
	model.CategoryCoreCS: {
		"dsa", "oop", "dbms", "os", "networks", "operating systems",
		"computer networks", "data structures", "algorithms",
	},
	model.CategoryLanguages: {
		"java", "python", "javascript", "typescript", "c", "c++", "c#",
		"go", "ruby", "swift", "kotlin", "php",
	},
	model.CategoryWeb: {
		"react", "next.js", "node.js", "express", "rest", "graphql",
		"html", "css", "tailwind", "redux", "vue", "angular",
	},
	model.CategoryData: {
		"sql", "mongodb", "postgresql", "mysql", "redis", "firebase",
		"nosql", "oracle",
	},
	model.CategoryCloud: {
		"aws", "azure", "gcp", "docker", "kubernetes", "ci/cd", "linux",
		"devops", "jenkins", "git",
	},
	model.CategoryTesting: {
		"selenium", "cypress", "playwright", "junit", "pytest", "jest", "mocha",
	},
	model.CategoryOther: {},
}

// FallbackSkills populate the Other category when nothing else matches, so an
// extraction is never empty.
var FallbackSkills = []string{"communication", "problem solving", "basic coding", "projects"}

// Default is the built-in taxonomy, compiled once at startup.
var Default = MustNewTaxonomy(defaultKeywords)

type matcher struct {
	keyword string
	re      *regexp.Regexp
}

// Taxonomy is an immutable category -> keyword mapping with one precompiled
// bounded-token matcher per keyword.
type Taxonomy struct {
	keywords map[model.SkillCategory][]string
	matchers map[model.SkillCategory][]matcher
}

// NewTaxonomy compiles keywords into a Taxonomy. Keywords are lower-cased and
// must be unique across all categories.
func NewTaxonomy(keywords map[model.SkillCategory][]string) (*Taxonomy, error) {
	t := &Taxonomy{
		keywords: make(map[model.SkillCategory][]string, len(model.Categories)),
		matchers: make(map[model.SkillCategory][]matcher, len(model.Categories)),
	}
	owner := make(map[string]model.SkillCategory)

	for _, c := range model.Categories {
		for _, raw := range keywords[c] {
			kw := strings.ToLower(strings.TrimSpace(raw))
			if kw == "" {
				return nil, fmt.Errorf("empty keyword in category %s", c)
			}
			if prev, dup := owner[kw]; dup {
				return nil, fmt.Errorf("keyword %q listed in both %s and %s", kw, prev, c)
			}
			owner[kw] = c

			re, err := compileKeyword(kw)
			if err != nil {
				return nil, fmt.Errorf("compiling keyword %q: %w", kw, err)
			}
			t.keywords[c] = append(t.keywords[c], kw)
			t.matchers[c] = append(t.matchers[c], matcher{keyword: kw, re: re})
		}
	}
	for c := range keywords {
		if _, ok := t.keywords[c]; !ok && len(keywords[c]) > 0 {
			return nil, fmt.Errorf("unknown category %q", c)
		}
	}
	return t, nil
}

// MustNewTaxonomy is like NewTaxonomy but panics on error.
func MustNewTaxonomy(keywords map[model.SkillCategory][]string) *Taxonomy {
	t, err := NewTaxonomy(keywords)
	if err != nil {
		panic(err)
	}
	return t
}

// compileKeyword builds a matcher that accepts kw only when it is bounded by
// non-word characters or the ends of the text.
func compileKeyword(kw string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?:^|\W)` + regexp.QuoteMeta(kw) + `(?:\W|$)`)
}

// Keywords returns a copy of the keywords for category c in match order.
func (t *Taxonomy) Keywords(c model.SkillCategory) []string {
	return append([]string(nil), t.keywords[c]...)
}

// IsFallback reports whether skill is one of the generic fallback tags.
func IsFallback(skill string) bool {
	for _, f := range FallbackSkills {
		if f == skill {
			return true
		}
	}
	return false
}

// TopSkills returns up to n entries of flat, skipping fallback tags.
func TopSkills(flat []string, n int) []string {
	var top []string
	for _, s := range flat {
		if len(top) == n {
			break
		}
		if IsFallback(s) {
			continue
		}
		top = append(top, s)
	}
	return top
}
