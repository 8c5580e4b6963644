// Package types provides type definitions for structured data used throughout the resume assistant.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Profile is the single job seeker's biographical and professional record.
// Skills, experience and education are free text as entered by the user.
type Profile struct {
	Name         string `json:"name" validate:"required,min=1"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	CurrentTitle string `json:"current_title,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Skills       string `json:"skills,omitempty"`
	Experience   string `json:"experience,omitempty"`
	Education    string `json:"education,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// ContactLine joins email, phone and location with " | ", skipping empty parts.
func (p *Profile) ContactLine() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, v := range []string{p.Email, p.Phone, p.Location} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

// SkillList splits the comma-separated skills text into trimmed, non-empty entries.
func (p *Profile) SkillList() []string {
	if p == nil {
		return nil
	}
	var skills []string
	for _, s := range strings.Split(p.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
