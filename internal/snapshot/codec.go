// Package snapshot converts the whole store to and from a single JSON
// document for backup downloads and restores.
package snapshot

import (
	"encoding/json"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/store"
)

// Document is the export wire shape. Earnings are always written on
// export; on import they may be absent (see migrations.go).
type Document struct {
	Expenses   []datamodel.Expense  `json:"expenses"`
	Earnings   []datamodel.Earning  `json:"earnings"`
	Categories []datamodel.Category `json:"categories"`
	Budgets    datamodel.Budgets    `json:"budgets"`
}

// Export renders the snapshot as a pretty-printed backup document.
// Category icons are stripped by the record marshaling.
func Export(snap store.Snapshot) ([]byte, error) {
	doc := Document{
		Expenses:   snap.Expenses,
		Earnings:   snap.Earnings,
		Categories: snap.Categories,
		Budgets:    snap.Budgets,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import decodes a candidate backup document. It is all-or-nothing: any
// failure returns an error and the caller applies nothing.
func Import(raw []byte) (store.Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return store.Snapshot{}, internal.NewDecodeError("Could not parse the file as JSON", internal.ErrCodeSnapshotDecode).WithCause(err)
	}

	if err := validateStructure(fields); err != nil {
		return store.Snapshot{}, err
	}

	fields, err := migrate(fields)
	if err != nil {
		return store.Snapshot{}, err
	}

	snap := store.Snapshot{
		Expenses:   []datamodel.Expense{},
		Earnings:   []datamodel.Earning{},
		Categories: []datamodel.Category{},
		Budgets:    datamodel.Budgets{},
	}
	if err := json.Unmarshal(fields["expenses"], &snap.Expenses); err != nil {
		return store.Snapshot{}, decodeFieldError("expenses", err)
	}
	if raw, ok := fields["earnings"]; ok {
		if err := json.Unmarshal(raw, &snap.Earnings); err != nil {
			return store.Snapshot{}, decodeFieldError("earnings", err)
		}
	}
	if err := json.Unmarshal(fields["categories"], &snap.Categories); err != nil {
		return store.Snapshot{}, decodeFieldError("categories", err)
	}
	if err := json.Unmarshal(fields["budgets"], &snap.Budgets); err != nil {
		return store.Snapshot{}, decodeFieldError("budgets", err)
	}

	snap.Categories = datamodel.AttachIcons(snap.Categories)
	return snap, nil
}

// validateStructure requires the three fields every supported version of
// the format has carried. Earnings are optional (migrated when absent).
func validateStructure(fields map[string]json.RawMessage) error {
	for _, required := range []string{"expenses", "categories", "budgets"} {
		if _, ok := fields[required]; !ok {
			return internal.NewDecodeError(
				"Invalid data structure in JSON file",
				internal.ErrCodeInvalidSnapshot,
			).WithDetails(map[string]string{"missing": required})
		}
	}
	return nil
}

func decodeFieldError(field string, cause error) *internal.AppError {
	return internal.NewDecodeError(
		"Could not decode the \""+field+"\" collection",
		internal.ErrCodeSnapshotDecode,
	).WithCause(cause)
}
