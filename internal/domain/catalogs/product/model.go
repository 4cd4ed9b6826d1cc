// Package product provides the Product catalog.
package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
)

// Product represents an item tracked by the invoice ledger.
type Product struct {
	entity.Catalog

	// CategoryID is an optional reference to a category.
	// Consumers must branch on presence; resolution is not guaranteed.
	CategoryID *string `db:"category_id" json:"categoryId,omitempty"`

	// Description is a required human-readable description
	Description string `db:"description" json:"description"`

	// Unit is the unit of measure label (pcs, kg, box)
	Unit string `db:"unit" json:"unit"`

	// OnHandQuantity is an informational, separately-edited stock figure.
	// It is never derived from ledger movement and must not be treated as
	// authoritative stock.
	OnHandQuantity decimal.Decimal `db:"on_hand_quantity" json:"onHandQuantity"`

	// CreatedBy and CreatedAt are set once at creation and immutable
	// thereafter; the repository excludes them from updates.
	CreatedBy string    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name, description string) *Product {
	return &Product{
		Catalog:        entity.NewCatalog(code, name),
		Description:    description,
		OnHandQuantity: decimal.Zero,
		CreatedAt:      time.Now().UTC(),
	}
}

// SetCategory sets or clears the category reference.
func (p *Product) SetCategory(categoryID string) {
	if categoryID == "" {
		p.CategoryID = nil
	} else {
		p.CategoryID = &categoryID
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}

	if p.OnHandQuantity.IsNegative() {
		return apperror.NewValidation("on-hand quantity cannot be negative").
			WithDetail("field", "onHandQuantity")
	}

	return nil
}
