package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// maxUploadBytes bounds resume uploads at 10 MB
const maxUploadBytes = 10 << 20

// handleAnalyze accepts a multipart resume upload and returns the full
// analysis
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "expected a multipart upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "failed to read upload"})
		return
	}

	doc, err := ingestion.ExtractText(header.Filename, data)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.stageUpload(header.Filename, data)

	ctx, cancel := s.requestContext(r)
	defer cancel()

	analysis, err := s.analyzer.AnalyzeResume(ctx, doc.Text, header.Filename)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

// questionsRequest is the request body for POST /questions
type questionsRequest struct {
	Analysis types.ResumeAnalysis `json:"analysis"`
	Config   types.QuestionConfig `json:"config"`
}

// handleQuestions generates interview questions from a previously
// returned analysis
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "failed to read request body"})
		return
	}
	if !json.Valid(body) {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := schemas.Validate(schemas.QuestionsRequest, body); err != nil {
		s.errorResponse(w, err)
		return
	}

	var req questionsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	questions, err := s.questions.Generate(ctx, &req.Analysis, req.Config)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"questions": questions})
}

// roadmapRequest is the request body for POST /roadmap
type roadmapRequest struct {
	Analysis types.ResumeAnalysis `json:"analysis"`
}

// handleRoadmap generates a career roadmap from a previously returned
// analysis
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "failed to read request body"})
		return
	}
	if !json.Valid(body) {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := schemas.Validate(schemas.RoadmapRequest, body); err != nil {
		s.errorResponse(w, err)
		return
	}

	var req roadmapRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	roadmap, err := s.roadmaps.Generate(ctx, &req.Analysis)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, roadmap)
}

// requestContext applies the configured generation timeout when set
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.timeout)
}

// stageUpload keeps a copy of the raw upload for the retention window.
// Failures are logged and ignored; staging is best-effort.
func (s *Server) stageUpload(filename string, data []byte) {
	if s.uploadDir == "" {
		return
	}
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.log.Warn("failed to create upload dir", zap.Error(err))
		return
	}
	name := uuid.NewString() + "_" + filepath.Base(filename)
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), data, 0o644); err != nil {
		s.log.Warn("failed to stage upload", zap.String("file", name), zap.Error(err))
	}
}
