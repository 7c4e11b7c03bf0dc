package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/transport"
	"github.com/frahmantamala/financeflow/pkg/logger"
)

type StoreAPI interface {
	Expenses() []datamodel.Expense
	Earnings() []datamodel.Earning
	Categories() []datamodel.Category
	Budgets() datamodel.Budgets
}

type Handler struct {
	*transport.BaseHandler
	Store StoreAPI
	now   func() time.Time
}

func NewHandler(store StoreAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Store:       store,
		now:         time.Now,
	}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	totals := ComputeTotals(h.Store.Expenses(), h.Store.Earnings(), h.Store.Budgets())
	h.WriteJSON(w, http.StatusOK, totals)
}

func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) {
	spending := SpendingByCategory(h.Store.Expenses(), h.Store.Categories())
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"spending": spending,
	})
}

// Daily reports per-day spending for a month. Defaults to the current
// month when year/month query params are absent.
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			h.WriteError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(parsed)
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"year":  year,
		"month": int(month),
		"days":  DailySeries(h.Store.Expenses(), year, month),
	})
}

func (h *Handler) ByDay(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"days": GroupByDay(h.Store.Expenses()),
	})
}
