package budget

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/transport"
	"github.com/frahmantamala/financeflow/pkg/logger"
)

type StoreAPI interface {
	Budgets() datamodel.Budgets
	SetBudget(ctx context.Context, categoryID string, limit float64)
	CategoryExists(id string) bool
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

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": h.Store.Budgets(),
	})
}

// SetBudget upserts the spending limit for a category. Setting a limit
// for a category that already has one replaces it.
func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	var dto SetBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SetBudget: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if !h.Store.CategoryExists(categoryID) {
		h.HandleServiceError(w, internal.NewValidationFieldError(
			"categoryId", "unknown category", internal.ErrCodeInvalidCategory))
		return
	}

	h.Store.SetBudget(r.Context(), categoryID, dto.Limit)

	h.Logger.Info("budget set", "category_id", categoryID, "limit", dto.Limit)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categoryId": categoryID,
		"limit":      dto.Limit,
	})
}
