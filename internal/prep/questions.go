package prep

import "github.com/amishk599/jdprep/internal/model"

// MaxQuestions caps the question list.
const MaxQuestions = 10

type questionRule struct {
	match     func(model.ExtractedSkills) bool
	questions [2]string
}

func containing(c model.SkillCategory, sub string) func(model.ExtractedSkills) bool {
	return func(es model.ExtractedSkills) bool { return es.AnyContains(c, sub) }
}

// Rules run in this order; their questions are appended before the generic
// ones. "java" also matches javascript and "sql" matches mysql, postgresql
// and nosql.
var questionRules = []questionRule{
	{
		match:     containing(model.CategoryLanguages, "java"),
		questions: [2]string{"Explain the difference between JDK, JRE, and JVM.", "How does Garbage Collection work in Java?"},
	},
	{
		match:     containing(model.CategoryLanguages, "python"),
		questions: [2]string{"Explain the difference between list and tuple.", "How is memory managed in Python?"},
	},
	{
		match:     containing(model.CategoryLanguages, "script"),
		questions: [2]string{"Explain Event Loop and Closures.", "Difference between == and ===?"},
	},
	{
		match:     containing(model.CategoryWeb, "react"),
		questions: [2]string{"Explain React Lifecycle methods vs Hooks.", "How does Virtual DOM work?"},
	},
	{
		match:     containing(model.CategoryData, "sql"),
		questions: [2]string{"Explain Indexing and when it helps.", "Difference between DELETE and TRUNCATE?"},
	},
	{
		match:     func(es model.ExtractedSkills) bool { return es.Has(model.CategoryCoreCS) },
		questions: [2]string{"Explain the difference between Process and Thread.", "What is Deadlock and how to prevent it?"},
	},
}

// GenericQuestions fill whatever room the skill-specific questions leave.
var GenericQuestions = []string{
	"How would you optimize search in sorted data?",
	"Explain a challenging bug you fixed recently.",
	"Design a URL shortener system (High level).",
	"Check for balanced parentheses in a string.",
	"Explain the concept of Polymorphism with real-world example.",
	"Find the Kth largest element in an array.",
}

// GenerateQuestions returns at most MaxQuestions unique questions: triggered
// pairs in rule order, then the generic list. A description that trips every
// rule produces twelve specific questions, so the last pair is cut along with
// all generic ones.
func GenerateQuestions(extracted model.ExtractedSkills) []string {
	var merged []string
	for _, r := range questionRules {
		if r.match(extracted) {
			merged = append(merged, r.questions[:]...)
		}
	}
	merged = append(merged, GenericQuestions...)

	seen := make(map[string]bool, len(merged))
	out := make([]string, 0, MaxQuestions)
	for _, q := range merged {
		if seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
		if len(out) == MaxQuestions {
			break
		}
	}
	return out
}
