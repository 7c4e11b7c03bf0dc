// Package store is the single source of truth for the four budgeting
// collections. One Store instance is built at startup and injected into
// every consumer; it is the only writer. Mutations are synchronous:
// when a call returns, the change has been committed and every change
// subscriber (the persistence mirror) has run.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/core/events"
	"github.com/frahmantamala/financeflow/internal/core/isotime"
)

type Store struct {
	mu sync.Mutex

	expenses   []datamodel.Expense
	earnings   []datamodel.Earning
	categories []datamodel.Category
	budgets    datamodel.Budgets

	expenseToEdit  *datamodel.Expense
	earningToEdit  *datamodel.Earning
	categoryToEdit *datamodel.Category

	hydrated bool

	bus    *events.EventBus
	logger *slog.Logger

	now       func() time.Time
	lastStamp int64
}

// New builds an empty store with the built-in default categories. The bus
// may be nil, in which case mutations commit without notifying anyone.
func New(bus *events.EventBus, logger *slog.Logger) *Store {
	return &Store{
		expenses:   []datamodel.Expense{},
		earnings:   []datamodel.Earning{},
		categories: datamodel.DefaultCategories(),
		budgets:    datamodel.Budgets{},
		bus:        bus,
		logger:     logger,
		now:        time.Now,
	}
}

// nextID generates prefix-<timestamp> ids. A monotonic guard keeps ids
// unique when two mutations land in the same millisecond.
func (s *Store) nextID(prefix string) string {
	stamp := s.now().UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	s.lastStamp = stamp
	return fmt.Sprintf("%s-%d", prefix, stamp)
}

func (s *Store) publish(ctx context.Context, eventType string, snapshot interface{}) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishSync(ctx, events.NewCollectionChanged(eventType, snapshot)); err != nil {
		s.logger.Error("change notification failed", "event_type", eventType, "error", err)
	}
}

// Snapshot is a consistent read of all four collections.
type Snapshot struct {
	Expenses   []datamodel.Expense
	Earnings   []datamodel.Earning
	Categories []datamodel.Category
	Budgets    datamodel.Budgets
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Expenses:   s.expensesLocked(),
		Earnings:   s.earningsLocked(),
		Categories: s.categoriesLocked(),
		Budgets:    s.budgets.Clone(),
	}
}

func (s *Store) Expenses() []datamodel.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expensesLocked()
}

func (s *Store) Earnings() []datamodel.Earning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.earningsLocked()
}

func (s *Store) Categories() []datamodel.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoriesLocked()
}

func (s *Store) Budgets() datamodel.Budgets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets.Clone()
}

func (s *Store) expensesLocked() []datamodel.Expense {
	out := make([]datamodel.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

func (s *Store) earningsLocked() []datamodel.Earning {
	out := make([]datamodel.Earning, len(s.earnings))
	copy(out, s.earnings)
	return out
}

func (s *Store) categoriesLocked() []datamodel.Category {
	out := make([]datamodel.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) CategoryExists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// AddExpense assigns an id and the current timestamp and prepends the
// record, newest first.
func (s *Store) AddExpense(ctx context.Context, description string, amount float64, categoryID string) datamodel.Expense {
	s.mu.Lock()
	exp := datamodel.Expense{
		ID:          s.nextID("exp"),
		Description: description,
		Amount:      amount,
		CategoryID:  categoryID,
		Date:        isotime.FromTime(s.now()),
	}
	s.expenses = append([]datamodel.Expense{exp}, s.expenses...)
	snap := s.expensesLocked()
	s.mu.Unlock()

	s.publish(ctx, events.TypeExpensesChanged, snap)
	return exp
}

// UpdateExpense replaces the record with the same id. Absent ids are a
// benign no-op; the return value reports whether anything changed.
func (s *Store) UpdateExpense(ctx context.Context, updated datamodel.Expense) bool {
	s.mu.Lock()
	replaced := false
	for i, exp := range s.expenses {
		if exp.ID == updated.ID {
			s.expenses[i] = updated
			replaced = true
			break
		}
	}
	s.expenseToEdit = nil
	snap := s.expensesLocked()
	s.mu.Unlock()

	if replaced {
		s.publish(ctx, events.TypeExpensesChanged, snap)
	}
	return replaced
}

func (s *Store) DeleteExpense(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.expenses[:0]
	for _, exp := range s.expenses {
		if exp.ID != id {
			kept = append(kept, exp)
		}
	}
	removed := len(kept) != len(s.expenses)
	s.expenses = kept
	snap := s.expensesLocked()
	s.mu.Unlock()

	if removed {
		s.publish(ctx, events.TypeExpensesChanged, snap)
	}
}

func (s *Store) AddEarning(ctx context.Context, description string, amount float64) datamodel.Earning {
	s.mu.Lock()
	earn := datamodel.Earning{
		ID:          s.nextID("earn"),
		Description: description,
		Amount:      amount,
		Date:        isotime.FromTime(s.now()),
	}
	s.earnings = append([]datamodel.Earning{earn}, s.earnings...)
	snap := s.earningsLocked()
	s.mu.Unlock()

	s.publish(ctx, events.TypeEarningsChanged, snap)
	return earn
}

func (s *Store) UpdateEarning(ctx context.Context, updated datamodel.Earning) bool {
	s.mu.Lock()
	replaced := false
	for i, earn := range s.earnings {
		if earn.ID == updated.ID {
			s.earnings[i] = updated
			replaced = true
			break
		}
	}
	s.earningToEdit = nil
	snap := s.earningsLocked()
	s.mu.Unlock()

	if replaced {
		s.publish(ctx, events.TypeEarningsChanged, snap)
	}
	return replaced
}

func (s *Store) DeleteEarning(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.earnings[:0]
	for _, earn := range s.earnings {
		if earn.ID != id {
			kept = append(kept, earn)
		}
	}
	removed := len(kept) != len(s.earnings)
	s.earnings = kept
	snap := s.earningsLocked()
	s.mu.Unlock()

	if removed {
		s.publish(ctx, events.TypeEarningsChanged, snap)
	}
}

// AddCategory appends a category with a generated id and the default icon.
func (s *Store) AddCategory(ctx context.Context, name, color string) datamodel.Category {
	s.mu.Lock()
	cat := datamodel.Category{
		ID:    s.nextID("cat"),
		Name:  name,
		Color: color,
		Icon:  datamodel.IconShapes,
	}
	s.categories = append(s.categories, cat)
	snap := s.categoriesLocked()
	s.mu.Unlock()

	s.publish(ctx, events.TypeCategoriesChanged, snap)
	return cat
}

func (s *Store) UpdateCategory(ctx context.Context, updated datamodel.Category) bool {
	s.mu.Lock()
	replaced := false
	for i, cat := range s.categories {
		if cat.ID == updated.ID {
			s.categories[i] = updated
			replaced = true
			break
		}
	}
	s.categoryToEdit = nil
	snap := s.categoriesLocked()
	s.mu.Unlock()

	if replaced {
		s.publish(ctx, events.TypeCategoriesChanged, snap)
	}
	return replaced
}

// DeleteCategory cascades: the category, its budget entry and every
// expense referencing it go in one synchronous unit of work.
func (s *Store) DeleteCategory(ctx context.Context, id string) {
	s.mu.Lock()
	keptCats := s.categories[:0]
	for _, cat := range s.categories {
		if cat.ID != id {
			keptCats = append(keptCats, cat)
		}
	}
	removed := len(keptCats) != len(s.categories)
	s.categories = keptCats

	delete(s.budgets, id)

	keptExps := s.expenses[:0]
	for _, exp := range s.expenses {
		if exp.CategoryID != id {
			keptExps = append(keptExps, exp)
		}
	}
	s.expenses = keptExps

	catSnap := s.categoriesLocked()
	budSnap := s.budgets.Clone()
	expSnap := s.expensesLocked()
	s.mu.Unlock()

	if !removed {
		return
	}
	s.publish(ctx, events.TypeCategoriesChanged, catSnap)
	s.publish(ctx, events.TypeBudgetsChanged, budSnap)
	s.publish(ctx, events.TypeExpensesChanged, expSnap)
}

// SetBudget upserts the limit for a category.
func (s *Store) SetBudget(ctx context.Context, categoryID string, limit float64) {
	s.mu.Lock()
	s.budgets[categoryID] = limit
	snap := s.budgets.Clone()
	s.mu.Unlock()

	s.publish(ctx, events.TypeBudgetsChanged, snap)
}

// ReplaceAll swaps all four collections in one unit of work. No reader
// observes a partially replaced state. Used by snapshot import.
func (s *Store) ReplaceAll(ctx context.Context, expenses []datamodel.Expense, earnings []datamodel.Earning, categories []datamodel.Category, budgets datamodel.Budgets) {
	s.mu.Lock()
	s.expenses = append([]datamodel.Expense{}, expenses...)
	s.earnings = append([]datamodel.Earning{}, earnings...)
	s.categories = append([]datamodel.Category{}, categories...)
	s.budgets = budgets.Clone()
	expSnap := s.expensesLocked()
	earnSnap := s.earningsLocked()
	catSnap := s.categoriesLocked()
	budSnap := s.budgets.Clone()
	s.mu.Unlock()

	s.publish(ctx, events.TypeExpensesChanged, expSnap)
	s.publish(ctx, events.TypeEarningsChanged, earnSnap)
	s.publish(ctx, events.TypeCategoriesChanged, catSnap)
	s.publish(ctx, events.TypeBudgetsChanged, budSnap)
}

// ResetAll is the destructive clear-all operation: empty expenses and
// earnings, built-in categories, empty budgets. Confirmation is the
// caller's responsibility. Subscribers see a single reset event and drop
// their persisted copies.
func (s *Store) ResetAll(ctx context.Context) {
	s.mu.Lock()
	s.expenses = []datamodel.Expense{}
	s.earnings = []datamodel.Earning{}
	s.categories = datamodel.DefaultCategories()
	s.budgets = datamodel.Budgets{}
	s.expenseToEdit = nil
	s.earningToEdit = nil
	s.categoryToEdit = nil
	s.mu.Unlock()

	s.publish(ctx, events.TypeStoreReset, nil)
}

// Hydrate installs state loaded from persistence without notifying
// subscribers, and marks the store ready for first reads.
func (s *Store) Hydrate(expenses []datamodel.Expense, earnings []datamodel.Earning, categories []datamodel.Category, budgets datamodel.Budgets) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]datamodel.Expense{}, expenses...)
	s.earnings = append([]datamodel.Earning{}, earnings...)
	s.categories = append([]datamodel.Category{}, categories...)
	s.budgets = budgets.Clone()
	s.hydrated = true
}

func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}
