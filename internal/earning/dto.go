package earning

import (
	"strings"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/core/isotime"
)

const maxDescriptionLength = 500

type CreateEarningDTO struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

func (d *CreateEarningDTO) Validate() error {
	d.Description = strings.TrimSpace(d.Description)

	if d.Description == "" {
		return internal.NewValidationFieldError("description", "description is required", internal.ErrCodeInvalidDescription)
	}
	if len(d.Description) > maxDescriptionLength {
		return internal.NewValidationFieldError("description", "description is too long", internal.ErrCodeInvalidDescription)
	}
	if d.Amount <= 0 {
		return internal.NewValidationFieldError("amount", "amount must be greater than zero", internal.ErrCodeInvalidAmount)
	}
	return nil
}

// UpdateEarningDTO carries a full replacement record. A zero Date means
// the caller wants to keep the stored timestamp.
type UpdateEarningDTO struct {
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	Date        isotime.Time `json:"date"`
}

func (d *UpdateEarningDTO) Validate() error {
	base := CreateEarningDTO{
		Description: d.Description,
		Amount:      d.Amount,
	}
	if err := base.Validate(); err != nil {
		return err
	}
	d.Description = base.Description
	return nil
}
