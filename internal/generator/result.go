package generator

import "github.com/jonathan/resume-assistant/internal/types"

// Source identifies which text source produced a result.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceTemplate Source = "template"
)

// FallbackReason records why the template was used instead of the remote source.
type FallbackReason string

const (
	FallbackNone          FallbackReason = ""
	FallbackNoCredential  FallbackReason = "no_credential"
	FallbackRemoteError   FallbackReason = "remote_error"
	FallbackEmptyResponse FallbackReason = "empty_response"
)

// Result is the outcome of one generation. Generation itself never fails:
// a remote failure is carried in FallbackReason and Err alongside the template output.
type Result struct {
	Text string
	// Document is set for resumes only.
	Document       *types.CanonicalDocument
	Source         Source
	FallbackReason FallbackReason
	Err            error
}

// UsedFallback reports whether the template produced the text.
func (r *Result) UsedFallback() bool {
	return r.Source == SourceTemplate
}
