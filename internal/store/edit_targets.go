package store

import "github.com/frahmantamala/financeflow/internal/core/datamodel"

// Edit targets are transient selections: at most one record per type is
// "being edited" at a time. They are set on edit-intent, cleared on
// update or close, and never persisted.

func (s *Store) SetExpenseToEdit(exp *datamodel.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenseToEdit = cloneIfSet(exp)
}

func (s *Store) ExpenseToEdit() *datamodel.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIfSet(s.expenseToEdit)
}

func (s *Store) SetEarningToEdit(earn *datamodel.Earning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.earningToEdit = cloneIfSet(earn)
}

func (s *Store) EarningToEdit() *datamodel.Earning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIfSet(s.earningToEdit)
}

func (s *Store) SetCategoryToEdit(cat *datamodel.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryToEdit = cloneIfSet(cat)
}

func (s *Store) CategoryToEdit() *datamodel.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIfSet(s.categoryToEdit)
}

func cloneIfSet[T any](v *T) *T {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}
