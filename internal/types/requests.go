package types

import "github.com/go-playground/validator/v10"

// ResumeRequest asks for a resume tailored to a job posting.
type ResumeRequest struct {
	CompanyName    string `json:"company_name,omitempty"`
	PositionTitle  string `json:"position_title,omitempty"`
	JobDescription string `json:"job_description" validate:"required"`
}

// CoverLetterRequest asks for a cover letter for a specific company and position.
type CoverLetterRequest struct {
	CompanyName    string `json:"company_name" validate:"required"`
	PositionTitle  string `json:"position_title" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
}

// InterviewQuestionsRequest asks for likely interview questions for a position.
type InterviewQuestionsRequest struct {
	PositionTitle  string `json:"position_title" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
}

// StatusUpdateRequest changes the status of a tracked application.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate validates the ResumeRequest using the validator.
func (r *ResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CoverLetterRequest using the validator.
func (r *CoverLetterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the InterviewQuestionsRequest using the validator.
func (r *InterviewQuestionsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the StatusUpdateRequest using the validator.
func (r *StatusUpdateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
