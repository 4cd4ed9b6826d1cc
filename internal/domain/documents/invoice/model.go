// Package invoice provides the invoice ledger documents.
// An input invoice records inbound (purchase) movement, an output invoice
// records outbound (sale) movement. The two variants share a shape but are
// stored independently and never share ids.
package invoice

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
)

// Direction distinguishes the two invoice variants.
type Direction string

const (
	// DirectionInput is inbound movement (purchase, stock increase).
	DirectionInput Direction = "input"

	// DirectionOutput is outbound movement (sale, stock decrease).
	DirectionOutput Direction = "output"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionInput, DirectionOutput:
		return Direction(s), nil
	}
	return "", apperror.NewValidation("invalid invoice direction").
		WithDetail("field", "direction").
		WithDetail("value", s)
}

// Invoice represents an invoice header with its line items.
type Invoice struct {
	entity.Document

	// Name is the display name of the invoice
	Name string `db:"name" json:"name"`

	// Customer info
	CustomerName    string `db:"customer_name" json:"customerName"`
	CustomerAddress string `db:"customer_address" json:"customerAddress"`

	// Totals (calculated from lines, recalculated on every line write)
	TotalQuantity int64 `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   int64 `db:"total_amount" json:"totalAmount"` // in minor units

	// Direction is implied by the storage table, not persisted as a column.
	Direction Direction `db:"-" json:"direction"`

	// Table part: line items
	Lines []Line `db:"-" json:"lines"`
}

// Line represents a single product entry on an invoice.
type Line struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Product reference. The product may have been deleted since; readers
	// must not assume it resolves.
	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity and pricing (non-negative integers)
	Quantity  int64 `db:"quantity" json:"quantity"`
	UnitPrice int64 `db:"unit_price" json:"unitPrice"` // in minor units

	// TotalPrice is always Quantity*UnitPrice, computed at write time and
	// stored denormalized. Never settable independently.
	TotalPrice int64 `db:"total_price" json:"totalPrice"`
}

// NewLine creates a line with its derived total.
func NewLine(productID id.ID, quantity, unitPrice int64) Line {
	return Line{
		LineID:     id.New(),
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: quantity * unitPrice,
	}
}

// SetAmounts updates quantity and unit price, recomputing the total.
func (l *Line) SetAmounts(quantity, unitPrice int64) {
	l.Quantity = quantity
	l.UnitPrice = unitPrice
	l.TotalPrice = quantity * unitPrice
}

// Validate checks line invariants.
func (l *Line) Validate() error {
	if id.IsNil(l.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if l.Quantity < 0 {
		return apperror.NewValidation("quantity must be a non-negative integer").
			WithDetail("field", "quantity")
	}
	if l.UnitPrice < 0 {
		return apperror.NewValidation("unit price must be a non-negative integer").
			WithDetail("field", "unitPrice")
	}
	if l.TotalPrice != l.Quantity*l.UnitPrice {
		return apperror.NewValidation("total price must equal quantity * unit price").
			WithDetail("field", "totalPrice")
	}
	return nil
}

// NewInvoice creates a new invoice header.
func NewInvoice(direction Direction, name, customerName, customerAddress string) *Invoice {
	return &Invoice{
		Document:        entity.NewDocument(),
		Name:            name,
		CustomerName:    customerName,
		CustomerAddress: customerAddress,
		Direction:       direction,
		Lines:           make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (inv *Invoice) AddLine(productID id.ID, quantity, unitPrice int64) Line {
	line := NewLine(productID, quantity, unitPrice)
	line.LineNo = len(inv.Lines) + 1

	inv.Lines = append(inv.Lines, line)
	inv.recalculateTotals()

	return line
}

// RemoveLine deletes a line by id and renumbers the remainder.
// Returns false if the line is not present.
func (inv *Invoice) RemoveLine(lineID id.ID) bool {
	for i, line := range inv.Lines {
		if line.LineID == lineID {
			inv.Lines = append(inv.Lines[:i], inv.Lines[i+1:]...)
			for j := range inv.Lines {
				inv.Lines[j].LineNo = j + 1
			}
			inv.recalculateTotals()
			return true
		}
	}
	return false
}

// recalculateTotals updates header totals from lines.
func (inv *Invoice) recalculateTotals() {
	inv.TotalQuantity = 0
	inv.TotalAmount = 0

	for _, line := range inv.Lines {
		inv.TotalQuantity += line.Quantity
		inv.TotalAmount += line.TotalPrice
	}
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if inv.Direction != DirectionInput && inv.Direction != DirectionOutput {
		return apperror.NewValidation("invalid invoice direction").
			WithDetail("field", "direction")
	}

	for i, line := range inv.Lines {
		if err := line.Validate(); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("lineNo", i+1)
			}
			return err
		}
	}

	return nil
}
