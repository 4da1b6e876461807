package httpapi

import (
	"net/http"

	"chinook/internal/logging"
)

type healthResponse struct {
	Status string `json:"status"`
}

// handleHealth reports ok only after a successful round trip to the database.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
