package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/legal-digest/internal/ingestion"
	"github.com/jonathan/legal-digest/internal/mailer"
	"github.com/jonathan/legal-digest/internal/pipeline"
	"github.com/jonathan/legal-digest/internal/rendering"
	"github.com/jonathan/legal-digest/internal/types"
)

// AnalyzeRequest represents the request body for /analyze and /analyze/stream
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// UploadResponse is a digest plus the metadata of the uploaded file
type UploadResponse struct {
	*types.Digest
	Document *ingestion.Metadata `json:"document"`
}

// AskRequest represents the request body for /ask
type AskRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// SendSummaryRequest represents the request body for /send-summary
type SendSummaryRequest struct {
	Summary SummaryLines `json:"summary" validate:"required"`
	Risks   []types.Risk `json:"risks"`
	Email   string       `json:"email" validate:"required,email"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// ReportRequest represents the request body for /report
type ReportRequest struct {
	Title   string         `json:"title" validate:"max=200"`
	Summary SummaryLines   `json:"summary"`
	Risks   []types.Risk   `json:"risks"`
	Clauses []types.Clause `json:"clauses"`
	Format  string         `json:"format" validate:"omitempty,oneof=txt tex html pdf"`
}

// SummaryLines accepts either a list of bullets or a single newline-separated string
type SummaryLines []string

// UnmarshalJSON implements json.Unmarshaler
func (s *SummaryLines) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = lines
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("summary must be a string or a list of strings")
	}
	*s = nil
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			*s = append(*s, line)
		}
	}
	return nil
}

// handleUpload extracts text from an uploaded file and analyzes it
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.writeError(w, bodyError("file", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, &types.ValidationError{Field: "file", Message: "No file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, bodyError("file", err))
		return
	}

	doc, err := s.extractor.Extract(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	digest, err := s.analyzer.Analyze(r.Context(), doc.Text, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{Digest: digest, Document: doc.Metadata})
}

// handleAnalyze analyzes raw text
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	digest, err := s.analyzer.Analyze(r.Context(), req.Text, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, digest)
}

// handleAnalyzeStream analyzes raw text and streams progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	// reject empty input before switching to an event stream
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, &types.ValidationError{Field: "text", Message: "document text is empty"})
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming analysis...")

	digest, err := s.analyzer.Analyze(r.Context(), req.Text, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})
	if err != nil {
		log.Printf("Streaming analysis failed: %v", err)
		sse.WriteError(err)
		return
	}

	sse.WriteComplete(digest)
	log.Printf("Streaming analysis completed (digest %s)", digest.ID)
}

// handleAsk answers a question against a document context
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	answer, err := s.analyzer.Ask(r.Context(), req.Question, req.Context)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, answer)
}

// handleSendSummary emails a summary and its risks
func (s *Server) handleSendSummary(w http.ResponseWriter, r *http.Request) {
	var req SendSummaryRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.writeError(w, err)
		return
	}

	msg, err := mailer.NewDigestMessage(req.Email, req.Summary, req.Risks)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.mailer == nil {
		s.writeError(w, &types.ConfigurationError{Field: "smtp", Message: "email delivery is not configured"})
		return
	}
	if err := s.mailer.Send(r.Context(), msg); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, MessageResponse{Message: "Summary sent successfully!"})
}

// handleReport renders a downloadable report
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.writeError(w, err)
		return
	}

	format := rendering.Format(req.Format)
	if format == "" {
		format = rendering.FormatText
	}

	report := rendering.Report{
		Title:   req.Title,
		Summary: types.Summary{Bullets: req.Summary},
		Risks:   req.Risks,
		Clauses: req.Clauses,
	}

	data, err := rendering.Render(r.Context(), report, format, s.pdf)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(string(format))))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing report: %v", err)
	}
}

// decode reads a JSON body capped at the upload limit
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return bodyError("body", err)
	}
	return nil
}

// validateRequest applies struct tags and reports the first failure
func (s *Server) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &types.ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "email":
		msg = fmt.Sprintf("%q is not a valid email address", fe.Value())
	case "oneof":
		msg = fmt.Sprintf("must be one of: %s", fe.Param())
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		msg = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return &types.ValidationError{Field: fe.Field(), Message: msg}
}

// bodyError turns a malformed or oversized body into a ValidationError
func bodyError(field string, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &types.ValidationError{Field: field, Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
	}
	return &types.ValidationError{Field: field, Message: "Invalid request body: " + err.Error()}
}
