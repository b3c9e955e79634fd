// Package prep builds the templated study plan, round checklist and
// interview questions from an extraction.
package prep

import (
	"strings"

	"github.com/amishk599/jdprep/internal/model"
	"github.com/amishk599/jdprep/internal/skills"
)

// DefaultStack is used in place of the stack summary when no specific skill
// was detected.
const DefaultStack = "General Technical Skills"

const stackSize = 3

// StackSummary joins up to three detected skills, ignoring fallback tags.
func StackSummary(flat []string) string {
	top := skills.TopSkills(flat, stackSize)
	if len(top) == 0 {
		return DefaultStack
	}
	return strings.Join(top, ", ")
}

// GeneratePlan returns the five-block, seven-day study plan.
func GeneratePlan(flat []string, extracted model.ExtractedSkills) []model.StudyPlanEntry {
	stack := StackSummary(flat)

	coreTask := "Review General aptitude and logic"
	if extracted.Has(model.CategoryCoreCS) {
		coreTask = "Deep dive into OS & DBMS concepts"
	}

	return []model.StudyPlanEntry{
		{
			Day:   "Day 1-2",
			Focus: "Basics + Core CS",
			Tasks: []string{
				"Revise Language Fundamentals (OOP, Syntax)",
				coreTask,
				"Solve 5 basic implementation problems",
			},
		},
		{
			Day:   "Day 3-4",
			Focus: "DSA + Coding Practice",
			Tasks: []string{
				"Focus on Arrays, Strings, and Maps",
				"Practice 2-pointer and Sliding Window patterns",
				"Solve 3 Medium LeetCode problems daily",
			},
		},
		{
			Day:   "Day 5",
			Focus: "Project + Resume Alignment",
			Tasks: []string{
				"Review projects using " + stack,
				`Prepare "Challenges Faced" stories`,
				"Optimize resume keywords for this JD",
			},
		},
		{
			Day:   "Day 6",
			Focus: "Mock Interview Questions",
			Tasks: []string{
				"Behavioral questions (STAR method)",
				"Technical deep dive into " + stack,
				"Mock interview with a peer or AI",
			},
		},
		{
			Day:   "Day 7",
			Focus: "Revision + Weak Areas",
			Tasks: []string{
				"Review notes and tricky concepts",
				"Rest and mental preparation",
				"Company research (Values, Products)",
			},
		},
	}
}
