// Package category provides the product Category catalog.
package category

import (
	"stockbook/internal/core/entity"
)

// Category groups products for filtering and reporting.
type Category struct {
	entity.Catalog

	// Description is an optional free-text note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}
