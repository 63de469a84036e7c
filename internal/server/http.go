package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zeusync/ecsquery/internal/core/observability/log"
	"github.com/zeusync/ecsquery/internal/core/query"
)

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := ReadRequest(http.MaxBytesReader(w, r.Body, s.config.MaxMessageSize))
	if err != nil {
		s.logger.Warn("Rejected query body", log.Error(err))
		writeJSON(w, http.StatusBadRequest, &WireResponse{Tuples: [][]any{}, Error: err.Error()})
		return
	}

	resp, err := s.Evaluate(r.Context(), req)
	writeJSON(w, s.status(err), resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": s.Connections(),
	})
}

func (s *Server) status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, query.ErrInput):
		s.logger.Debug("Rejected query", log.Error(err))
		return http.StatusBadRequest
	default:
		s.logger.Error("Query failed", log.Error(err))
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
