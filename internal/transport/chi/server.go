// Package chi exposes the flowsearch HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gridwerk/flowsearch/internal/domain"
	queryuc "github.com/gridwerk/flowsearch/internal/usecase/query"
)

// Server holds the HTTP handlers of the flowsearch API.
type Server struct {
	query  *queryuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(query *queryuc.Service, logger *zap.Logger) *Server {
	return &Server{query: query, logger: logger}
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/query", s.handleQuery)
	r.Post("/query", s.handleLegacyQuery)
	r.Get("/api/data-flows", s.handleListFlows)
	r.Get("/api/data-flows/{id}", s.handleGetFlow)
	r.Get("/api/systems", s.handleListSystems)
	r.Get("/api/formats", s.handleListFormats)
	r.Get("/api/transmission-methods", s.handleListMethods)
	r.Get("/api/interfaces", s.handleListInterfaces)
	r.Post("/api/reload", s.handleReload)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

type queryRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	result, err := s.query.Search(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		s.handleError(w, err, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// legacyQueryResponse keeps the response shape the first dashboard frontend
// expects: the full result plus flat results/count/query fields.
type legacyQueryResponse struct {
	domain.SearchResult
	Results []domain.ScoredFlow `json:"results"`
	Count   int                 `json:"count"`
	Query   string              `json:"query"`
}

func (s *Server) handleLegacyQuery(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid JSON in request body")
		return
	}

	text, _ := body["text"].(string)
	if text == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "Missing 'text' field in request")
		return
	}

	result, err := s.query.Search(r.Context(), text, 0)
	if err != nil {
		s.handleError(w, err, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, legacyQueryResponse{
		SearchResult: result,
		Results:      result.DirectResults,
		Count:        len(result.DirectResults),
		Query:        text,
	})
}

func (s *Server) handleListFlows(w http.ResponseWriter, r *http.Request) {
	flows := s.query.Catalog().Flows

	q := r.URL.Query()
	source := q.Get("source_system")
	target := q.Get("target_system")
	format := q.Get("format")
	method := q.Get("transmission_method")

	filtered := make([]domain.Flow, 0, len(flows))
	for _, f := range flows {
		if source != "" && f.SourceSystem != source {
			continue
		}
		if target != "" && f.TargetSystem != target {
			continue
		}
		if format != "" && f.Format != format {
			continue
		}
		if method != "" && !strings.Contains(f.TransmissionMethod, method) {
			continue
		}
		filtered = append(filtered, f)
	}

	writeJSON(w, http.StatusOK, filtered)
}

func (s *Server) handleGetFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.query.Catalog().FlowByID(chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, err, "flow lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, flow)
}

func (s *Server) handleListSystems(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stringList(s.query.Catalog().Systems))
}

func (s *Server) handleListFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stringList(s.query.Catalog().Formats))
}

func (s *Server) handleListMethods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stringList(s.query.Catalog().TransmissionMethods))
}

func (s *Server) handleListInterfaces(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stringList(s.query.Catalog().Interfaces))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.query.Reload(r.Context()); err != nil {
		s.logger.Error("catalog reload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "reload_failed", "Failed to reload data")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Data reloaded successfully"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"flows":  len(s.query.Catalog().Flows),
	})
}

// handleError maps domain sentinels to HTTP statuses.
func (s *Server) handleError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrFlowNotFound):
		writeError(w, http.StatusNotFound, "flow_not_found", "Data flow not found")
	case errors.Is(err, domain.ErrInvalidCatalog):
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "Catalog not loaded")
	default:
		s.logger.Error(msg, zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// stringList never marshals as null.
func stringList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
