package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/core/datamodel"
	"github.com/frahmantamala/financeflow/internal/core/isotime"
)

// Older backups used a single overallBudget number instead of an
// earnings list. Imports run every step in order, each a pure function
// of the raw document, so future format changes compose instead of
// piling up inline conditionals.
type migration struct {
	name  string
	apply func(map[string]json.RawMessage) (map[string]json.RawMessage, error)
}

var migrations = []migration{
	{name: "overall-budget-to-earnings", apply: migrateOverallBudget},
}

func migrate(fields map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	var err error
	for _, m := range migrations {
		fields, err = m.apply(fields)
		if err != nil {
			return nil, internal.NewDecodeError(
				fmt.Sprintf("Migration %q failed", m.name),
				internal.ErrCodeSnapshotDecode,
			).WithCause(err)
		}
	}
	return fields, nil
}

// migrateOverallBudget synthesizes a single earning out of the legacy
// overallBudget field. Documents that already carry earnings pass
// through untouched; documents with neither get an empty list.
func migrateOverallBudget(fields map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	if _, ok := fields["earnings"]; ok {
		return fields, nil
	}

	earnings := []datamodel.Earning{}
	if raw, ok := fields["overallBudget"]; ok {
		var amount float64
		if err := json.Unmarshal(raw, &amount); err != nil {
			return nil, err
		}
		if amount != 0 {
			earnings = append(earnings, datamodel.Earning{
				ID:          fmt.Sprintf("earn-%d", time.Now().UnixMilli()),
				Description: "Imported Budget",
				Amount:      amount,
				Date:        isotime.Now(),
			})
		}
	}

	encoded, err := json.Marshal(earnings)
	if err != nil {
		return nil, err
	}
	fields["earnings"] = encoded
	return fields, nil
}
