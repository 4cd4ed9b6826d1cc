// Package reports provides the stock movement report.
package reports

import (
	"time"

	"stockbook/internal/core/id"
)

// DeletedProductLabel is rendered when a line references a product that no
// longer resolves. Deleting a referenced product is allowed, so the report
// must degrade gracefully instead of failing.
const DeletedProductLabel = "(deleted product)"

// ProductTotal is one aggregated quantity for one product on one side of
// the ledger. The aggregator emits totals ordered by product id; absence
// of a product means zero movement.
type ProductTotal struct {
	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductCode string `db:"product_code" json:"productCode"`
	ProductName string `db:"product_name" json:"productName"`
	Quantity    int64  `db:"quantity" json:"quantity"`
}

// ReportRow is one reconciled row of the stock movement report: the
// imported and exported quantity of a single product over the range.
// Ephemeral, produced fresh per query, never persisted.
type ReportRow struct {
	ProductID        id.ID  `json:"productId"`
	ProductCode      string `json:"productCode"`
	ProductName      string `json:"productName"`
	ImportedQuantity int64  `json:"importedQuantity"`
	ExportedQuantity int64  `json:"exportedQuantity"`
}

// StockMovementReport is the full reconciled report over a closed date range.
type StockMovementReport struct {
	FromDate time.Time   `json:"fromDate"`
	ToDate   time.Time   `json:"toDate"`
	Rows     []ReportRow `json:"rows"`
	RowCount int         `json:"rowCount"`

	// NoData distinguishes "no invoices touched the range at all" from an
	// empty-but-valid report.
	NoData bool `json:"noData"`

	// Summary totals
	TotalImported int64 `json:"totalImported"`
	TotalExported int64 `json:"totalExported"`
}
