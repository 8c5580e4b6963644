package types

import (
	"fmt"
	"sort"
	"strings"
)

// Status is the lifecycle state of a tracked job application.
type Status string

// Application statuses
const (
	StatusPending   Status = "pending"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusOffered   Status = "offered"
	StatusAccepted  Status = "accepted"
)

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInterview, StatusRejected, StatusOffered, StatusAccepted}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus normalizes case and whitespace and checks the result against the known statuses.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q", value)
	}
	return s, nil
}

// Document kinds recorded in Application.DocumentsGenerated
const (
	DocumentResume      = "resume"
	DocumentCoverLetter = "cover_letter"
)

// Application is one tracked job application. Records are identified by their
// position in the stored sequence, so deleting an entry shifts later indices.
type Application struct {
	CompanyName        string   `json:"company_name"`
	PositionTitle      string   `json:"position_title"`
	ApplicationDate    string   `json:"application_date"`
	Status             Status   `json:"status"`
	JobDescription     string   `json:"job_description"`
	DocumentsGenerated []string `json:"documents_generated"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

// EffectiveStatus returns the record's status, treating an empty value as pending.
func (a *Application) EffectiveStatus() Status {
	s := Status(strings.ToLower(strings.TrimSpace(string(a.Status))))
	if s == "" {
		return StatusPending
	}
	return s
}

// ApplicationEntry pairs a record with its current positional index.
type ApplicationEntry struct {
	Index int `json:"index"`
	Application
}

// SortNewestFirst orders entries by application date, newest first. Entries with the
// same date keep their stored order.
func SortNewestFirst(entries []ApplicationEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ApplicationDate > entries[j].ApplicationDate
	})
}

// ApplicationStats counts applications per status.
type ApplicationStats struct {
	Total     int `json:"total_applications"`
	Pending   int `json:"pending"`
	Interview int `json:"interview"`
	Rejected  int `json:"rejected"`
	Offered   int `json:"offered"`
	Accepted  int `json:"accepted"`
}

// Add counts one application under its effective status.
// Unknown statuses count toward the total only.
func (s *ApplicationStats) Add(app *Application) {
	s.Total++
	switch app.EffectiveStatus() {
	case StatusPending:
		s.Pending++
	case StatusInterview:
		s.Interview++
	case StatusRejected:
		s.Rejected++
	case StatusOffered:
		s.Offered++
	case StatusAccepted:
		s.Accepted++
	}
}
