package dto

import (
	"time"

	"stockbook/internal/domain/reports"
)

// --- Response DTOs ---

// StockMovementRowResponse is one reconciled report row.
type StockMovementRowResponse struct {
	ProductID        string `json:"productId"`
	ProductCode      string `json:"productCode,omitempty"`
	ProductName      string `json:"productName"`
	ImportedQuantity int64  `json:"importedQuantity"`
	ExportedQuantity int64  `json:"exportedQuantity"`
}

// StockMovementReportResponse is the full report payload.
type StockMovementReportResponse struct {
	FromDate      time.Time                  `json:"fromDate"`
	ToDate        time.Time                  `json:"toDate"`
	Rows          []StockMovementRowResponse `json:"rows"`
	RowCount      int                        `json:"rowCount"`
	NoData        bool                       `json:"noData"`
	TotalImported int64                      `json:"totalImported"`
	TotalExported int64                      `json:"totalExported"`
}

// FromStockMovementReport converts a domain report to response DTO.
func FromStockMovementReport(r *reports.StockMovementReport) StockMovementReportResponse {
	rows := make([]StockMovementRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = StockMovementRowResponse{
			ProductID:        row.ProductID.String(),
			ProductCode:      row.ProductCode,
			ProductName:      row.ProductName,
			ImportedQuantity: row.ImportedQuantity,
			ExportedQuantity: row.ExportedQuantity,
		}
	}

	return StockMovementReportResponse{
		FromDate:      r.FromDate,
		ToDate:        r.ToDate,
		Rows:          rows,
		RowCount:      r.RowCount,
		NoData:        r.NoData,
		TotalImported: r.TotalImported,
		TotalExported: r.TotalExported,
	}
}
