package risk

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/pricefeed"
)

// Handler handles risk HTTP requests
type Handler struct {
	computer *Computer
	feed     pricefeed.Provider
	log      zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(computer *Computer, feed pricefeed.Provider, log zerolog.Logger) *Handler {
	return &Handler{
		computer: computer,
		feed:     feed,
		log:      log.With().Str("handler", "risk").Logger(),
	}
}

// HandleBands returns the fixed risk band list
func (h *Handler) HandleBands(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, Bands)
}

// HandleSeries returns the full scored series for a symbol
func (h *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "symbol")))
	if symbol == "" {
		h.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	prices, err := h.feed.History(symbol)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, "failed to load price history")
		return
	}

	h.writeJSON(w, http.StatusOK, h.computer.Score(prices))
}

// Helper methods

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
