package budget

import (
	"github.com/frahmantamala/financeflow/internal"
)

type SetBudgetDTO struct {
	Limit float64 `json:"limit"`
}

func (d *SetBudgetDTO) Validate() error {
	if d.Limit <= 0 {
		return internal.NewValidationFieldError("limit", "limit must be greater than zero", internal.ErrCodeInvalidLimit)
	}
	return nil
}
