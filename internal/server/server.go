// Package server exposes the assistant over HTTP: a health probe and the
// question endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/domain"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/logger"
)

// Asker answers one question.
type Asker interface {
	Ask(ctx context.Context, question string) (domain.Answer, error)
}

// Statser reports index counters.
type Statser interface {
	Stats(ctx context.Context) (domain.IndexStats, error)
}

type Server struct {
	asker      Asker
	statser    Statser
	corsOrigin string
	httpServer *http.Server
}

func New(asker Asker, statser Statser, port int, corsOrigin string) *Server {
	s := &Server{
		asker:      asker,
		statser:    statser,
		corsOrigin: corsOrigin,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("GET /stats", s.handleStats)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withCORS(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	logger.Info("listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type askRequest struct {
	Question       string `json:"question"`
	IncludeContext bool   `json:"include_context,omitempty"`
}

type askResponse struct {
	Answer     string          `json:"answer"`
	Sources    []domain.Source `json:"sources"`
	Context    []contextChunk  `json:"context,omitempty"`
	TokensUsed int             `json:"tokens_used,omitempty"`
	Provider   string          `json:"provider,omitempty"`
}

type contextChunk struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Section    string  `json:"section,omitempty"`
	URL        string  `json:"url,omitempty"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statser.Stats(r.Context())
	if err != nil {
		logger.Warn("stats failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "stats unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is required"})
		return
	}

	answer, err := s.asker.Ask(r.Context(), question)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Warn("ask failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to answer question"})
		return
	}

	resp := askResponse{
		Answer:     answer.Answer,
		Sources:    answer.Sources,
		TokensUsed: answer.TokensUsed,
		Provider:   answer.Provider,
	}
	if req.IncludeContext {
		for _, sc := range answer.Context {
			resp.Context = append(resp.Context, contextChunk{
				ID:         sc.Chunk.ID,
				Title:      sc.Chunk.Title,
				Section:    sc.Chunk.Section,
				URL:        sc.Chunk.URL,
				Text:       sc.Chunk.Text,
				Similarity: sc.Score,
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response: %v", err)
	}
}
