package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Collaborator interfaces, satisfied by the concrete analyzer and
// generators and by test fakes.
type resumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, text, sourceFile string) (*types.ResumeAnalysis, error)
}

type questionGenerator interface {
	Generate(ctx context.Context, analysis *types.ResumeAnalysis, cfg types.QuestionConfig) ([]types.Question, error)
}

type roadmapGenerator interface {
	Generate(ctx context.Context, analysis *types.ResumeAnalysis) (*types.CareerRoadmap, error)
}

type runtimeChecker interface {
	CheckAvailability(ctx context.Context) bool
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	log        *zap.Logger

	analyzer  resumeAnalyzer
	questions questionGenerator
	roadmaps  roadmapGenerator
	runtime   runtimeChecker

	uploadDir string
	retention time.Duration
	timeout   time.Duration

	sweeper *sweeper
}

// Config holds server configuration
type Config struct {
	Port      int
	UploadDir string
	Retention time.Duration
	Timeout   time.Duration
}

// New creates a new server instance
func New(cfg Config, analyzer resumeAnalyzer, questions questionGenerator, roadmaps roadmapGenerator, runtime runtimeChecker, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		log:       log,
		analyzer:  analyzer,
		questions: questions,
		roadmaps:  roadmaps,
		runtime:   runtime,
		uploadDir: cfg.UploadDir,
		retention: cfg.Retention,
		timeout:   cfg.Timeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /questions", s.handleQuestions)
	mux.HandleFunc("POST /roadmap", s.handleRoadmap)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // analysis fans out several model calls
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if s.uploadDir != "" {
		s.sweeper = newSweeper(s.uploadDir, s.retention, s.log)
		s.sweeper.start()
	}

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.sweeper != nil {
		s.sweeper.stop()
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// handleHealth reports server and model runtime status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "ollama": "connected"}
	if !s.runtime.CheckAvailability(r.Context()) {
		status["ollama"] = "unavailable"
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response with the status mapped
// from the error type
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), map[string]string{"error": err.Error()})
}
