package generator

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-assistant/internal/types"
)

// MaxQuestions caps the number of interview questions returned.
const MaxQuestions = 10

const technicalQuestions = 3

var technicalTemplates = []string{
	"Explain your experience with %s.",
	"How would you approach %s implementation?",
	"Describe a challenging %s project you worked on.",
}

// InterviewQuestions builds likely interview questions from the profile skills and
// the position title. The output is deterministic; jobDescription does not affect it.
func InterviewQuestions(profile *types.Profile, position, jobDescription string) []string {
	position = strings.TrimSpace(position)
	lower := strings.ToLower(position)
	skills := profile.SkillList()

	questions := []string{
		fmt.Sprintf("Tell me about yourself and your background in %s.", lower),
		fmt.Sprintf("Why are you interested in this %s role?", lower),
	}

	if len(skills) > 0 {
		for i := 0; i < technicalQuestions; i++ {
			questions = append(questions, fmt.Sprintf(technicalTemplates[i], skills[i%len(skills)]))
		}
	}

	firstSkill := "technology"
	if len(skills) > 0 {
		firstSkill = skills[0]
	}
	questions = append(questions,
		fmt.Sprintf("Describe a time when you had to learn a new %s quickly.", firstSkill),
		"Tell me about a challenging project and how you overcame obstacles.",
		"How do you handle tight deadlines and pressure?",
		fmt.Sprintf("What interests you most about this %s role?", position),
		fmt.Sprintf("How do you see yourself contributing to our %s team?", position),
		fmt.Sprintf("What are your long-term career goals in %s?", lower),
	)

	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	return questions
}
