package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleHealth is a liveness probe
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSystemStatus reports uptime and database health
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := s.db.Conn().Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"database":       dbStatus,
		"uptime_seconds": int(time.Since(s.started).Seconds()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
