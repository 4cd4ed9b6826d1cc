package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/id"
)

func total(productID id.ID, name string, qty int64) ProductTotal {
	return ProductTotal{
		ProductID:   productID,
		ProductName: name,
		Quantity:    qty,
	}
}

func TestReconcile_MergesBothSides(t *testing.T) {
	bolt := id.New()
	nut := id.New()
	washer := id.New()

	imported := []ProductTotal{
		total(bolt, "Bolt", 500),
		total(nut, "Nut", 300),
	}
	exported := []ProductTotal{
		total(bolt, "Bolt", 40),
		total(washer, "Washer", 10),
	}

	rows := Reconcile(imported, exported)

	require.Len(t, rows, 3)

	byID := make(map[id.ID]ReportRow, len(rows))
	for _, row := range rows {
		byID[row.ProductID] = row
	}

	assert.Equal(t, int64(500), byID[bolt].ImportedQuantity)
	assert.Equal(t, int64(40), byID[bolt].ExportedQuantity)

	// Imported only: exported defaults to zero
	assert.Equal(t, int64(300), byID[nut].ImportedQuantity)
	assert.Equal(t, int64(0), byID[nut].ExportedQuantity)

	// Exported only: imported defaults to zero
	assert.Equal(t, int64(0), byID[washer].ImportedQuantity)
	assert.Equal(t, int64(10), byID[washer].ExportedQuantity)
}

func TestReconcile_OneRowPerProduct(t *testing.T) {
	bolt := id.New()

	rows := Reconcile(
		[]ProductTotal{total(bolt, "Bolt", 100)},
		[]ProductTotal{total(bolt, "Bolt", 60)},
	)

	require.Len(t, rows, 1)
	assert.Equal(t, bolt, rows[0].ProductID)
	assert.Equal(t, int64(100), rows[0].ImportedQuantity)
	assert.Equal(t, int64(60), rows[0].ExportedQuantity)
}

func TestReconcile_ImportedSideFirst(t *testing.T) {
	a := id.New()
	b := id.New()
	c := id.New()

	rows := Reconcile(
		[]ProductTotal{total(a, "A", 1), total(b, "B", 2)},
		[]ProductTotal{total(c, "C", 3), total(b, "B", 4)},
	)

	require.Len(t, rows, 3)
	assert.Equal(t, a, rows[0].ProductID)
	assert.Equal(t, b, rows[1].ProductID)
	assert.Equal(t, c, rows[2].ProductID)
}

func TestReconcile_Empty(t *testing.T) {
	rows := Reconcile(nil, nil)
	assert.Empty(t, rows)

	rows = Reconcile([]ProductTotal{}, []ProductTotal{})
	assert.Empty(t, rows)
}

func TestReconcile_KeepsDeletedProductLabel(t *testing.T) {
	orphan := id.New()

	rows := Reconcile(nil, []ProductTotal{total(orphan, DeletedProductLabel, 5)})

	require.Len(t, rows, 1)
	assert.Equal(t, DeletedProductLabel, rows[0].ProductName)
	assert.Equal(t, int64(5), rows[0].ExportedQuantity)
}
