package invoice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
)

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("input")
	require.NoError(t, err)
	assert.Equal(t, DirectionInput, d)

	d, err = ParseDirection("output")
	require.NoError(t, err)
	assert.Equal(t, DirectionOutput, d)

	_, err = ParseDirection("sideways")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestNewLine_DerivesTotal(t *testing.T) {
	productID := id.New()

	line := NewLine(productID, 7, 12)

	assert.Equal(t, int64(84), line.TotalPrice)
	assert.False(t, id.IsNil(line.LineID))
}

func TestLine_SetAmountsRecomputesTotal(t *testing.T) {
	line := NewLine(id.New(), 2, 10)

	line.SetAmounts(5, 30)

	assert.Equal(t, int64(5), line.Quantity)
	assert.Equal(t, int64(30), line.UnitPrice)
	assert.Equal(t, int64(150), line.TotalPrice)
}

func TestLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *Line)
		wantErr bool
	}{
		{name: "valid", mutate: func(l *Line) {}, wantErr: false},
		{name: "zero quantity allowed", mutate: func(l *Line) { l.SetAmounts(0, 10) }, wantErr: false},
		{name: "missing product", mutate: func(l *Line) { l.ProductID = id.Nil() }, wantErr: true},
		{name: "negative quantity", mutate: func(l *Line) { l.Quantity = -1; l.TotalPrice = -10 }, wantErr: true},
		{name: "negative unit price", mutate: func(l *Line) { l.UnitPrice = -5; l.TotalPrice = -10 }, wantErr: true},
		{name: "tampered total", mutate: func(l *Line) { l.TotalPrice = 9999 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := NewLine(id.New(), 2, 10)
			tt.mutate(&line)

			err := line.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInvoice_AddLineUpdatesTotals(t *testing.T) {
	inv := NewInvoice(DirectionInput, "Purchase", "Acme", "1 Warehouse Rd")

	inv.AddLine(id.New(), 500, 12)
	inv.AddLine(id.New(), 300, 7)

	assert.Equal(t, int64(800), inv.TotalQuantity)
	assert.Equal(t, int64(500*12+300*7), inv.TotalAmount)
	assert.Equal(t, 1, inv.Lines[0].LineNo)
	assert.Equal(t, 2, inv.Lines[1].LineNo)
}

func TestInvoice_RemoveLineRenumbersAndRecalculates(t *testing.T) {
	inv := NewInvoice(DirectionOutput, "Sale", "Bob", "2 Main St")
	first := inv.AddLine(id.New(), 10, 5)
	second := inv.AddLine(id.New(), 20, 3)

	ok := inv.RemoveLine(first.LineID)
	require.True(t, ok)

	require.Len(t, inv.Lines, 1)
	assert.Equal(t, second.LineID, inv.Lines[0].LineID)
	assert.Equal(t, 1, inv.Lines[0].LineNo)
	assert.Equal(t, int64(20), inv.TotalQuantity)
	assert.Equal(t, int64(60), inv.TotalAmount)

	assert.False(t, inv.RemoveLine(id.New()), "unknown line must not be removed")
}

func TestInvoice_Validate(t *testing.T) {
	ctx := context.Background()

	inv := NewInvoice(DirectionInput, "Purchase", "Acme", "")
	inv.AddLine(id.New(), 5, 10)
	assert.NoError(t, inv.Validate(ctx))

	// A bad line surfaces with its line number
	inv.Lines[0].TotalPrice = 1
	err := inv.Validate(ctx)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 1, appErr.Details["lineNo"])

	// Direction is required
	bad := NewInvoice("", "X", "", "")
	assert.Error(t, bad.Validate(ctx))
}
