package reports

import (
	"stockbook/internal/core/id"
)

// Reconcile merges the two per-product aggregates into a single row set:
// exactly one row per distinct product appearing on either side, the other
// side defaulting to zero.
//
// The imported side is walked first in the order the aggregator produced
// it, then products that only exported are appended. Callers should rely on
// row completeness, not row order.
func Reconcile(imported, exported []ProductTotal) []ReportRow {
	rows := make([]ReportRow, 0, len(imported)+len(exported))
	placed := make(map[id.ID]struct{}, len(imported))

	exportedByID := make(map[id.ID]ProductTotal, len(exported))
	for _, total := range exported {
		exportedByID[total.ProductID] = total
	}

	for _, in := range imported {
		row := ReportRow{
			ProductID:        in.ProductID,
			ProductCode:      in.ProductCode,
			ProductName:      in.ProductName,
			ImportedQuantity: in.Quantity,
		}
		if out, ok := exportedByID[in.ProductID]; ok {
			row.ExportedQuantity = out.Quantity
		}
		rows = append(rows, row)
		placed[in.ProductID] = struct{}{}
	}

	for _, out := range exported {
		if _, ok := placed[out.ProductID]; ok {
			continue
		}
		rows = append(rows, ReportRow{
			ProductID:        out.ProductID,
			ProductCode:      out.ProductCode,
			ProductName:      out.ProductName,
			ExportedQuantity: out.Quantity,
		})
	}

	return rows
}
