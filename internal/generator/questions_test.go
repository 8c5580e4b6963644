package generator

import (
	"testing"

	"github.com/jonathan/resume-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestInterviewQuestions_WithSkills(t *testing.T) {
	profile := &types.Profile{Skills: "Go, Kubernetes"}

	questions := InterviewQuestions(profile, "Backend Engineer", "")

	expected := []string{
		"Tell me about yourself and your background in backend engineer.",
		"Why are you interested in this backend engineer role?",
		"Explain your experience with Go.",
		"How would you approach Kubernetes implementation?",
		"Describe a challenging Go project you worked on.",
		"Describe a time when you had to learn a new Go quickly.",
		"Tell me about a challenging project and how you overcame obstacles.",
		"How do you handle tight deadlines and pressure?",
		"What interests you most about this Backend Engineer role?",
		"How do you see yourself contributing to our Backend Engineer team?",
	}
	assert.Equal(t, expected, questions)
}

func TestInterviewQuestions_WithoutSkills(t *testing.T) {
	questions := InterviewQuestions(&types.Profile{}, "Analyst", "")

	assert.Len(t, questions, 8)
	assert.Equal(t, "Describe a time when you had to learn a new technology quickly.", questions[2])
	assert.Equal(t, "What are your long-term career goals in analyst?", questions[7])
}

func TestInterviewQuestions_NilProfile(t *testing.T) {
	questions := InterviewQuestions(nil, "Designer", "")

	assert.Len(t, questions, 8)
}

func TestInterviewQuestions_Capped(t *testing.T) {
	questions := InterviewQuestions(&types.Profile{Skills: "A, B, C, D, E"}, "Engineer", "")

	assert.Len(t, questions, MaxQuestions)
}

func TestInterviewQuestions_Deterministic(t *testing.T) {
	profile := &types.Profile{Skills: "Go"}

	assert.Equal(t, InterviewQuestions(profile, "SRE", "x"), InterviewQuestions(profile, "SRE", "y"))
}
