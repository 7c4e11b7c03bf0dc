package earning

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/transport"
	"github.com/frahmantamala/financeflow/pkg/logger"
)

type StoreAPI interface {
	Earnings() []datamodel.Earning
	AddEarning(ctx context.Context, description string, amount float64) datamodel.Earning
	UpdateEarning(ctx context.Context, updated datamodel.Earning) bool
	DeleteEarning(ctx context.Context, id string)
}

type Handler struct {
	*transport.BaseHandler
	Store StoreAPI
}

func NewHandler(store StoreAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Store:       store,
	}
}

func (h *Handler) ListEarnings(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"earnings": h.Store.Earnings(),
	})
}

func (h *Handler) CreateEarning(w http.ResponseWriter, r *http.Request) {
	var dto CreateEarningDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEarning: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	earn := h.Store.AddEarning(r.Context(), dto.Description, dto.Amount)

	h.Logger.Info("earning recorded", "earning_id", earn.ID, "amount", earn.Amount)
	h.WriteJSON(w, http.StatusCreated, earn)
}

func (h *Handler) UpdateEarning(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateEarningDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEarning: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	existing, ok := h.findEarning(id)
	if !ok {
		h.WriteError(w, http.StatusNotFound, "earning not found")
		return
	}

	updated := datamodel.Earning{
		ID:          id,
		Description: dto.Description,
		Amount:      dto.Amount,
		Date:        dto.Date,
	}
	if updated.Date.IsZero() {
		updated.Date = existing.Date
	}

	h.Store.UpdateEarning(r.Context(), updated)
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteEarning(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.Store.DeleteEarning(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) findEarning(id string) (datamodel.Earning, bool) {
	for _, earn := range h.Store.Earnings() {
		if earn.ID == id {
			return earn, true
		}
	}
	return datamodel.Earning{}, false
}
