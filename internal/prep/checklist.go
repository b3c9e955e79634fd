package prep

import "github.com/amishk599/jdprep/internal/model"

// Round titles used by the checklist, in interview order.
const (
	RoundAptitude   = "Round 1: Aptitude / Basics"
	RoundDSA        = "Round 2: DSA + Core CS"
	RoundTechnical  = "Round 3: Tech Interview"
	RoundManagerial = "Round 4: Managerial / HR"
)

// ChecklistRounds lists the checklist round titles in order.
var ChecklistRounds = []string{RoundAptitude, RoundDSA, RoundTechnical, RoundManagerial}

// GenerateChecklist returns the four-round preparation checklist. Only the
// first technical-round item depends on the detected stack.
func GenerateChecklist(flat []string) []model.ChecklistEntry {
	stack := StackSummary(flat)

	return []model.ChecklistEntry{
		{
			RoundTitle: RoundAptitude,
			Items: []string{
				"Quantitative Aptitude (Time & Work, Probability)",
				"Logical Reasoning (Puzzles, Series)",
				"Verbal Ability (Reading Comprehension)",
				"Basic Debugging / Output prediction",
				"Time Complexity analysis",
			},
		},
		{
			RoundTitle: RoundDSA,
			Items: []string{
				"Data Structures (Arrays, Linked Lists, Trees)",
				"Algorithms (Sorting, Searching, Recursion)",
				"Object Oriented Programming concepts",
				"DBMS (SQL Queries, Normalization)",
				"Operating Systems (Processes, Threads, Memory Mgmt)",
			},
		},
		{
			RoundTitle: RoundTechnical,
			Items: []string{
				"Deep discussion on " + stack,
				"Project Architecture and Design choices",
				"Rest API / System Design basics",
				"Live coding / pair programming",
				"Code optimization and clean code practices",
			},
		},
		{
			RoundTitle: RoundManagerial,
			Items: []string{
				"Why this company? / Why this role?",
				"Strengths and Weaknesses",
				"Situation handling (Conflict resolution)",
				"Future goals (Short term / Long term)",
				"Salary expectations and negotiation",
			},
		},
	}
}
