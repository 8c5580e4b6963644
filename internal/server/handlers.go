package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-assistant/internal/assistant"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"github.com/jonathan/resume-assistant/internal/types"
)

// maxBodyBytes bounds request bodies; job descriptions are the largest inputs.
const maxBodyBytes = 1 << 20

// Response headers describing how a generated document was produced.
const (
	headerSource         = "X-Generation-Source"
	headerFallbackReason = "X-Fallback-Reason"
)

// resumeDocumentRequest renders Text when set; otherwise it generates a resume first.
type resumeDocumentRequest struct {
	Text string `json:"text,omitempty"`
	types.ResumeRequest
}

// coverLetterDocumentRequest renders Text when set; otherwise it generates a letter first.
type coverLetterDocumentRequest struct {
	Text string `json:"text,omitempty"`
	types.CoverLetterRequest
}

// QuestionsResponse is the response for /interview-questions
type QuestionsResponse struct {
	PositionTitle string   `json:"position_title"`
	Questions     []string `json:"questions"`
}

// ApplicationsResponse is the response for /applications
type ApplicationsResponse struct {
	Applications []types.ApplicationEntry `json:"applications"`
	Count        int                      `json:"count"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.service.Profile(r.Context())
	if errors.Is(err, assistant.ErrProfileMissing) {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile types.Profile
	if err := decodeJSON(w, r, &profile); err != nil {
		s.handleError(w, r, err)
		return
	}
	saved, err := s.service.SaveProfile(r.Context(), &profile)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	out, err := s.service.GenerateResume(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleResumeDocument(w http.ResponseWriter, r *http.Request) {
	format, err := rendering.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var req resumeDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	var doc *assistant.RenderedDocument
	if strings.TrimSpace(req.Text) != "" {
		doc, err = s.service.RenderResume(r.Context(), req.Text, format)
	} else {
		var out *assistant.GenerationOutput
		out, err = s.service.GenerateResume(r.Context(), req.ResumeRequest)
		if err == nil {
			setGenerationHeaders(w, out)
			doc, err = s.service.RenderResumeDocument(r.Context(), out.Document, format)
		}
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.documentResponse(w, doc)
}

func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req types.CoverLetterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	out, err := s.service.GenerateCoverLetter(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleCoverLetterDocument(w http.ResponseWriter, r *http.Request) {
	format, err := rendering.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var req coverLetterDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	text := req.Text
	if strings.TrimSpace(text) == "" {
		out, err := s.service.GenerateCoverLetter(r.Context(), req.CoverLetterRequest)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		setGenerationHeaders(w, out)
		text = out.Text
	}

	doc, err := s.service.RenderCoverLetter(r.Context(), text, format)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.documentResponse(w, doc)
}

func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.InterviewQuestionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	questions, err := s.service.InterviewQuestions(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, QuestionsResponse{
		PositionTitle: strings.TrimSpace(req.PositionTitle),
		Questions:     questions,
	})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	entries, err := s.service.Applications(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if entries == nil {
		entries = []types.ApplicationEntry{}
	}
	s.jsonResponse(w, http.StatusOK, ApplicationsResponse{Applications: entries, Count: len(entries)})
}

func (s *Server) handleApplicationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.ApplicationStats(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var req types.StatusUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	entry, err := s.service.UpdateApplicationStatus(r.Context(), index, req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.service.DeleteApplication(r.Context(), index); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// documentResponse writes a rendered document as a download.
func (s *Server) documentResponse(w http.ResponseWriter, doc *assistant.RenderedDocument) {
	w.Header().Set("Content-Type", doc.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		s.logger.Warn("failed to write document", "filename", doc.Filename, "error", err)
	}
}

func setGenerationHeaders(w http.ResponseWriter, out *assistant.GenerationOutput) {
	w.Header().Set(headerSource, string(out.Source))
	if out.FallbackReason != "" {
		w.Header().Set(headerFallbackReason, string(out.FallbackReason))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

func pathIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		return 0, &ErrValidation{Field: "index", Message: "must be a non-negative integer"}
	}
	return index, nil
}
