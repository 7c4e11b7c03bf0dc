package category

import (
	"strings"

	"github.com/frahmantamala/financeflow/internal"
)

const maxNameLength = 100

type CreateCategoryDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (d *CreateCategoryDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	d.Color = strings.TrimSpace(d.Color)

	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeInvalidDescription)
	}
	if len(d.Name) > maxNameLength {
		return internal.NewValidationFieldError("name", "name is too long", internal.ErrCodeInvalidDescription)
	}
	if d.Color == "" {
		return internal.NewValidationFieldError("color", "color is required", internal.ErrCodeInvalidDescription)
	}
	return nil
}

type UpdateCategoryDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (d *UpdateCategoryDTO) Validate() error {
	base := CreateCategoryDTO{Name: d.Name, Color: d.Color}
	if err := base.Validate(); err != nil {
		return err
	}
	d.Name = base.Name
	d.Color = base.Color
	return nil
}
