package expense

import (
	"strings"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/core/isotime"
)

const maxDescriptionLength = 500

// CreateExpenseDTO is the request payload for recording an expense.
// The store accepts whatever it is given; all input validation happens
// here, before anything reaches it.
type CreateExpenseDTO struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CategoryID  string  `json:"categoryId"`
}

func (dto *CreateExpenseDTO) Validate() error {
	dto.Description = strings.TrimSpace(dto.Description)

	if dto.Description == "" {
		return internal.NewValidationFieldError("description", "description is required", internal.ErrCodeInvalidDescription)
	}
	if len(dto.Description) > maxDescriptionLength {
		return internal.NewValidationFieldError("description", "description must be at most 500 characters", internal.ErrCodeInvalidDescription)
	}
	if dto.Amount <= 0 {
		return internal.NewValidationFieldError("amount", "amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if dto.CategoryID == "" {
		return internal.NewValidationFieldError("categoryId", "category is required", internal.ErrCodeInvalidCategory)
	}
	return nil
}

// UpdateExpenseDTO replaces an existing record. A zero date keeps the
// record's current timestamp.
type UpdateExpenseDTO struct {
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	CategoryID  string       `json:"categoryId"`
	Date        isotime.Time `json:"date"`
}

func (dto *UpdateExpenseDTO) Validate() error {
	base := CreateExpenseDTO{
		Description: dto.Description,
		Amount:      dto.Amount,
		CategoryID:  dto.CategoryID,
	}
	if err := base.Validate(); err != nil {
		return err
	}
	dto.Description = base.Description
	return nil
}
