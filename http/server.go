// Package http exposes the documentation query interface over HTTP as a
// small JSON API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dochive/dochive"
	"github.com/google/uuid"
)

// Server serves the query interface: document retrieval, keyword search,
// AI search, cache stats, and cache invalidation.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	Addr string

	Library  dochive.Library
	Searcher dochive.Searcher
	Answerer dochive.Answerer
	Logger   *slog.Logger
}

// NewServer creates a new Server with routes registered.
func NewServer() *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		Logger: slog.Default(),
	}
	s.server = &http.Server{Handler: s.requestLogger(s.mux)}

	s.mux.HandleFunc("GET /api/doc", s.handleDoc)
	s.mux.HandleFunc("GET /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/ai-search", s.handleAISearch)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("POST /api/invalidate", s.handleInvalidate)

	return s
}

// ServeHTTP implements http.Handler, including the logging middleware,
// so the server can be exercised without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// Open begins listening on Addr and serves until Close.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the listening server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// requestLogger tags each request with an ID and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		requestID := uuid.New().String()
		next.ServeHTTP(w, r)
		s.Logger.Info("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(begin),
		)
	})
}

// handleDoc returns a single document's rendered content by absolute
// path.
func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		s.writeError(w, dochive.Errorf(dochive.EINVALID, "doc path required"))
		return
	}

	tree, err := s.Library.OrganizedDocs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc := tree.FindByPath(path)
	if doc == nil {
		s.writeError(w, dochive.Errorf(dochive.ENOTFOUND, "document not found"))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"html":      doc.HTML,
		"title":     doc.DisplayTitle(),
		"video_url": doc.VideoURL,
		"source":    doc.SourceName,
	})
}

// handleSearch runs plain keyword search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, dochive.Errorf(dochive.EINVALID, "no search query provided"))
		return
	}

	tree, err := s.Library.OrganizedDocs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	results := s.Searcher.Search(tree, query)
	if results == nil {
		results = []dochive.SearchResult{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// handleAISearch runs AI answer generation, re-dispatching to plain
// keyword search when the capability is unavailable. The fallback is the
// handler's job, not the answer engine's.
func (s *Server) handleAISearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, dochive.Errorf(dochive.EINVALID, "no search query provided"))
		return
	}

	tree, err := s.Library.OrganizedDocs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	answer, err := s.Answerer.Answer(r.Context(), tree, query)
	if dochive.ErrorCode(err) == dochive.EUNAVAILABLE {
		results := s.Searcher.Search(tree, query)
		if results == nil {
			results = []dochive.SearchResult{}
		}
		s.writeJSON(w, http.StatusOK, map[string]any{
			"fallback": true,
			"results":  results,
		})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, answer)
}

// handleStats returns cache introspection.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Library.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// handleInvalidate clears every cached entry and the baseline.
func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	if err := s.Library.InvalidateAll(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"invalidated": true})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := dochive.ErrorCode(err)
	if code == dochive.EINTERNAL {
		s.Logger.Error("internal error", "err", err)
	}
	s.writeJSON(w, statusFromCode(code), map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": dochive.ErrorMessage(err),
		},
	})
}

func statusFromCode(code string) int {
	switch code {
	case dochive.EINVALID:
		return http.StatusBadRequest
	case dochive.ENOTFOUND:
		return http.StatusNotFound
	case dochive.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
