package category

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
	Categories() []datamodel.Category
	AddCategory(ctx context.Context, name, color string) datamodel.Category
	UpdateCategory(ctx context.Context, updated datamodel.Category) bool
	DeleteCategory(ctx context.Context, id string)
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

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.Store.Categories(),
	})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	cat := h.Store.AddCategory(r.Context(), dto.Name, dto.Color)

	h.Logger.Info("category created", "category_id", cat.ID, "name", cat.Name)
	h.WriteJSON(w, http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	existing, ok := h.findCategory(id)
	if !ok {
		h.WriteError(w, http.StatusNotFound, "category not found")
		return
	}

	// rename and recolor only; the icon assignment survives edits
	updated := datamodel.Category{
		ID:    id,
		Name:  dto.Name,
		Color: dto.Color,
		Icon:  existing.Icon,
	}

	h.Store.UpdateCategory(r.Context(), updated)
	h.WriteJSON(w, http.StatusOK, updated)
}

// DeleteCategory removes the category together with its budget entry and
// every expense that referenced it.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.Store.DeleteCategory(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) findCategory(id string) (datamodel.Category, bool) {
	for _, cat := range h.Store.Categories() {
		if cat.ID == id {
			return cat, true
		}
	}
	return datamodel.Category{}, false
}
