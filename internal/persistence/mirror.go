package persistence

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/core/events"
	"github.com/frahmantamala/financeflow/internal/store"
)

// Mirror reacts to store change events by writing the changed collection
// through to the document table, and rehydrates the store at startup.
type Mirror struct {
	docs   *DocumentStore
	logger *slog.Logger
}

func NewMirror(docs *DocumentStore, logger *slog.Logger) *Mirror {
	return &Mirror{docs: docs, logger: logger}
}

// Register subscribes the mirror to every store change event. Delivery is
// synchronous, so a mutation has been persisted by the time it returns.
func (m *Mirror) Register(bus *events.EventBus) {
	bus.Subscribe(events.TypeExpensesChanged, m.writeCollection(KeyExpenses))
	bus.Subscribe(events.TypeEarningsChanged, m.writeCollection(KeyEarnings))
	bus.Subscribe(events.TypeCategoriesChanged, m.writeCollection(KeyCategories))
	bus.Subscribe(events.TypeBudgetsChanged, m.writeCollection(KeyBudgets))
	bus.Subscribe(events.TypeStoreReset, m.clearAll)
}

func (m *Mirror) writeCollection(key string) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		// Category icons are process-local tags, excluded by the record
		// types' own marshaling.
		raw, err := json.Marshal(event.Payload())
		if err != nil {
			return err
		}
		if err := m.docs.Put(key, string(raw)); err != nil {
			return err
		}
		m.logger.Debug("collection mirrored", "key", key, "bytes", len(raw))
		return nil
	}
}

func (m *Mirror) clearAll(ctx context.Context, event events.Event) error {
	for _, key := range CollectionKeys {
		if err := m.docs.Delete(key); err != nil {
			return err
		}
	}
	m.logger.Info("persisted collections cleared")
	return nil
}

// Hydrate loads the four collections into the store. A key that is
// absent or unparseable falls back to that key's default in isolation;
// the other keys still load. Must complete before the server starts
// answering state reads.
func (m *Mirror) Hydrate(st *store.Store) {
	expenses := loadKey(m, KeyExpenses, []datamodel.Expense{})
	earnings := loadKey(m, KeyEarnings, []datamodel.Earning{})
	categories := loadKey(m, KeyCategories, datamodel.DefaultCategories())
	budgets := loadKey(m, KeyBudgets, datamodel.Budgets{})

	// Icon tags are not stored; re-attach them by id, unknown ids fall
	// back to the default icon.
	categories = datamodel.AttachIcons(categories)

	st.Hydrate(expenses, earnings, categories, budgets)
	m.logger.Info("store hydrated",
		"expenses", len(expenses),
		"earnings", len(earnings),
		"categories", len(categories),
		"budgets", len(budgets))
}

func loadKey[T any](m *Mirror, key string, fallback T) T {
	raw, found, err := m.docs.Get(key)
	if err != nil {
		m.logger.Warn("reading persisted collection failed, using default", "key", key, "error", err)
		return fallback
	}
	if !found {
		return fallback
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		m.logger.Warn("persisted collection unparseable, using default", "key", key, "error", err)
		return fallback
	}
	return value
}
