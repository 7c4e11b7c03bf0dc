package expense

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

// StoreAPI is the slice of the data store this handler consumes.
type StoreAPI interface {
	Expenses() []datamodel.Expense
	AddExpense(ctx context.Context, description string, amount float64, categoryID string) datamodel.Expense
	UpdateExpense(ctx context.Context, updated datamodel.Expense) bool
	DeleteExpense(ctx context.Context, id string)
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

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": h.Store.Expenses(),
	})
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	// The store deliberately accepts dangling references; the foreign-key
	// check lives here so a deleted category cannot be referenced by a
	// late form submission.
	if !h.Store.CategoryExists(dto.CategoryID) {
		h.HandleServiceError(w, internal.NewValidationFieldError(
			"categoryId", "unknown category", internal.ErrCodeInvalidCategory))
		return
	}

	exp := h.Store.AddExpense(r.Context(), dto.Description, dto.Amount, dto.CategoryID)

	h.Logger.Info("expense recorded", "expense_id", exp.ID, "amount", exp.Amount, "category_id", exp.CategoryID)
	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	existing, ok := h.findExpense(id)
	if !ok {
		h.WriteError(w, http.StatusNotFound, "expense not found")
		return
	}

	updated := datamodel.Expense{
		ID:          id,
		Description: dto.Description,
		Amount:      dto.Amount,
		CategoryID:  dto.CategoryID,
		Date:        dto.Date,
	}
	if updated.Date.IsZero() {
		updated.Date = existing.Date
	}

	h.Store.UpdateExpense(r.Context(), updated)
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// delete-of-absent is a benign no-op, so this is idempotent
	h.Store.DeleteExpense(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) findExpense(id string) (datamodel.Expense, bool) {
	for _, exp := range h.Store.Expenses() {
		if exp.ID == id {
			return exp, true
		}
	}
	return datamodel.Expense{}, false
}
