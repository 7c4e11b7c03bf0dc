package rest

import (
	"net/http"

	"github.com/frahmantamala/financeflow/internal/store"
	"github.com/frahmantamala/financeflow/internal/transport"
	"github.com/frahmantamala/financeflow/pkg/logger"
)

type StateStoreAPI interface {
	Snapshot() store.Snapshot
	Hydrated() bool
}

// StateHandler exposes the whole in-memory state in one read, the shape
// dashboard clients render from.
type StateHandler struct {
	*transport.BaseHandler
	Store StateStoreAPI
}

func NewStateHandler(st StateStoreAPI) *StateHandler {
	return &StateHandler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Store:       st,
	}
}

func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses":   snap.Expenses,
		"earnings":   snap.Earnings,
		"categories": snap.Categories,
		"budgets":    snap.Budgets,
		"hydrated":   h.Store.Hydrated(),
	})
}
