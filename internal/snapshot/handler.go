package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/store"
	"github.com/frahmantamala/financeflow/internal/transport"
	"github.com/frahmantamala/financeflow/pkg/logger"
)

// maxImportSize caps backup uploads at 10 MiB.
const maxImportSize = 10 << 20

type StoreAPI interface {
	Snapshot() store.Snapshot
	ReplaceAll(ctx context.Context, expenses []datamodel.Expense, earnings []datamodel.Earning, categories []datamodel.Category, budgets datamodel.Budgets)
	ResetAll(ctx context.Context)
}

type Handler struct {
	*transport.BaseHandler
	Store StoreAPI
	now   func() time.Time
}

func NewHandler(st StoreAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Store:       st,
		now:         time.Now,
	}
}

// ExportData streams the full state as a downloadable backup file.
func (h *Handler) ExportData(w http.ResponseWriter, r *http.Request) {
	data, err := Export(h.Store.Snapshot())
	if err != nil {
		h.Logger.Error("export failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to export data")
		return
	}

	filename := fmt.Sprintf("financeflow-backup-%s.json", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("export write failed", "error", err)
	}
}

// ImportData replaces all collections from an uploaded backup. Any
// decode failure rejects the whole document and leaves state untouched.
func (h *Handler) ImportData(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		h.Logger.Error("ImportData: failed to read body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	snap, err := Import(raw)
	if err != nil {
		h.Logger.Warn("import rejected", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Store.ReplaceAll(r.Context(), snap.Expenses, snap.Earnings, snap.Categories, snap.Budgets)

	h.Logger.Info("data imported",
		"expenses", len(snap.Expenses),
		"earnings", len(snap.Earnings),
		"categories", len(snap.Categories),
		"budgets", len(snap.Budgets))
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"imported": map[string]int{
			"expenses":   len(snap.Expenses),
			"earnings":   len(snap.Earnings),
			"categories": len(snap.Categories),
			"budgets":    len(snap.Budgets),
		},
	})
}

// ResetData restores factory defaults and clears all records.
func (h *Handler) ResetData(w http.ResponseWriter, r *http.Request) {
	h.Store.ResetAll(r.Context())
	h.Logger.Info("data reset to defaults")
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "reset",
	})
}
