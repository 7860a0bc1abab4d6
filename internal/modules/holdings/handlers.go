package holdings

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/dca-lab/internal/domain"
	"github.com/aristath/dca-lab/internal/events"
)

// Handler handles holdings HTTP requests
type Handler struct {
	repo    *Repository
	service *Service
	events  *events.Manager
	log     zerolog.Logger
}

// NewHandler creates a new holdings handler
func NewHandler(repo *Repository, service *Service, ev *events.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
		events:  ev,
		log:     log.With().Str("handler", "holdings").Logger(),
	}
}

// HandleList returns all stored holdings
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.repo.GetAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if holdings == nil {
		holdings = []Holding{}
	}
	h.writeJSON(w, http.StatusOK, holdings)
}

// HandleCreate stores a new holding
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var holding Holding
	if err := json.NewDecoder(r.Body).Decode(&holding); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	holding.Ticker = strings.ToUpper(strings.TrimSpace(holding.Ticker))
	if holding.Ticker == "" {
		h.writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	if holding.Shares < 0 || holding.EntryPrice < 0 {
		h.writeError(w, http.StatusBadRequest, "shares and entry price must be >= 0")
		return
	}
	if holding.AssetClass == "" {
		holding.AssetClass = domain.AssetClassEquity
	}

	id, err := h.repo.Create(holding)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	holding.ID = id

	h.events.Emit(events.HoldingAdded, "holdings", map[string]interface{}{
		"ticker":  holding.Ticker,
		"planned": holding.Planned,
	})

	h.writeJSON(w, http.StatusCreated, holding)
}

// HandleUpdate rewrites an existing holding
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid holding id")
		return
	}

	existing, err := h.repo.Get(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		h.writeError(w, http.StatusNotFound, "holding not found")
		return
	}

	var holding Holding
	if err := json.NewDecoder(r.Body).Decode(&holding); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	holding.ID = id
	holding.Ticker = strings.ToUpper(strings.TrimSpace(holding.Ticker))
	if holding.Ticker == "" {
		holding.Ticker = existing.Ticker
	}
	if holding.AssetClass == "" {
		holding.AssetClass = existing.AssetClass
	}

	if err := h.repo.Update(holding); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, holding)
}

// HandleDelete removes a holding
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid holding id")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.events.Emit(events.HoldingRemoved, "holdings", map[string]interface{}{"id": id})

	h.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// HandleReport returns the aggregated holdings view
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, report)
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
