package assistant

import (
	"context"
	"net/http"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/transport"
	"github.com/frahmantamala/financeflow/pkg/logger"
)

type ClientAPI interface {
	StandardizeCategoryNames(ctx context.Context, req StandardizeRequest) (StandardizeReply, error)
	SummarizeSpending(ctx context.Context, req SummarizeRequest) (SummarizeReply, error)
}

type StoreAPI interface {
	Expenses() []datamodel.Expense
	Earnings() []datamodel.Earning
	Categories() []datamodel.Category
}

// Handler serves the AI helper endpoints. A nil Client means the
// assistant section of the config is unset and both endpoints answer 503.
type Handler struct {
	*transport.BaseHandler
	Client ClientAPI
	Store  StoreAPI
}

func NewHandler(client ClientAPI, store StoreAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Client:      client,
		Store:       store,
	}
}

func (h *Handler) StandardizeCategories(w http.ResponseWriter, r *http.Request) {
	if h.Client == nil {
		h.WriteError(w, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	categories := h.Store.Categories()
	req := StandardizeRequest{Categories: make([]CategoryName, 0, len(categories))}
	for _, cat := range categories {
		req.Categories = append(req.Categories, CategoryName{ID: cat.ID, Name: cat.Name})
	}

	reply, err := h.Client.StandardizeCategoryNames(r.Context(), req)
	if err != nil {
		h.Logger.Error("standardize categories failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, reply)
}

func (h *Handler) SummarizeSpending(w http.ResponseWriter, r *http.Request) {
	if h.Client == nil {
		h.WriteError(w, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	req := SummarizeRequest{
		Expenses:   h.Store.Expenses(),
		Categories: h.Store.Categories(),
		Earnings:   h.Store.Earnings(),
	}

	reply, err := h.Client.SummarizeSpending(r.Context(), req)
	if err != nil {
		h.Logger.Error("summarize spending failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, reply)
}
