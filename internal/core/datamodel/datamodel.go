// Package datamodel holds the record types shared by the store, the
// persistence mirror, the snapshot codec and the report layer.
package datamodel

import (
	"github.com/frahmantamala/financeflow/internal/core/isotime"
)

// IconKind is a pure tag resolved to a renderable asset by the
// presentation layer. It is never serialized with the category record.
type IconKind string

const (
	IconUtensils    IconKind = "utensils"
	IconCar         IconKind = "car"
	IconHome        IconKind = "home"
	IconTicket      IconKind = "ticket"
	IconHeartPulse  IconKind = "heart-pulse"
	IconShoppingBag IconKind = "shopping-bag"
	IconEllipsis    IconKind = "ellipsis"
	IconShapes      IconKind = "shapes"
)

type Category struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color"`
	Icon  IconKind `json:"-"`
}

type Expense struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	CategoryID  string       `json:"categoryId"`
	Date        isotime.Time `json:"date"`
}

type Earning struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	Date        isotime.Time `json:"date"`
}

// Budgets maps a category id to its spending limit. Map semantics give
// upsert/last-write-wins for free.
type Budgets map[string]float64

func (b Budgets) Clone() Budgets {
	out := make(Budgets, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
