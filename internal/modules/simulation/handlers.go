package simulation

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/events"
	"github.com/aristath/dca-lab/internal/pricefeed"
)

// Handler handles simulation HTTP requests
type Handler struct {
	service *Service
	repo    *Repository
	feed    pricefeed.Provider
	events  *events.Manager
	log     zerolog.Logger
}

// NewHandler creates a new simulation handler
func NewHandler(service *Service, repo *Repository, feed pricefeed.Provider, ev *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		feed:    feed,
		events:  ev,
		log:     log.With().Str("handler", "simulation").Logger(),
	}
}

// RunRequest is the body of POST /api/simulations/run
type RunRequest struct {
	Symbol string `json:"symbol"`
	Params
}

// HandleRun runs a simulation against a symbol's price history
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		h.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	params := req.Params.WithDefaults()
	if err := params.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prices, err := h.feed.History(symbol)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, "failed to load price history")
		return
	}

	result, err := h.service.Run(symbol, prices, params)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.events.Emit(events.SimulationCompleted, "simulation", map[string]interface{}{
		"symbol":   symbol,
		"days":     len(prices),
		"invested": result.Stats.TotalInvested,
		"value":    result.Stats.PortfolioValue,
	})

	h.writeJSON(w, http.StatusOK, result)
}

// HandleRecent returns the most recent persisted run summaries
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil {
			limit = parsed
		}
	}

	records, err := h.repo.Recent(limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if records == nil {
		records = []RunRecord{}
	}
	h.writeJSON(w, http.StatusOK, records)
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
