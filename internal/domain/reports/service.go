package reports

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/tx"
)

// Service produces the stock movement report. Aggregation and
// reconciliation are pure, synchronous, read-only computations over a
// point-in-time snapshot; both aggregate reads run inside one read-only
// transaction so they see the same snapshot.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// StockMovement generates the reconciled per-product import/export report
// over the closed interval [from, to]. A missing bound fails with an
// invalid-range error rather than silently defaulting to an unbounded range.
func (s *Service) StockMovement(ctx context.Context, from, to *time.Time) (*StockMovementReport, error) {
	if from == nil || to == nil {
		return nil, apperror.NewInvalidRange("fromDate and toDate are required")
	}
	if from.After(*to) {
		return nil, apperror.NewInvalidRange("fromDate must not be after toDate").
			WithDetail("fromDate", from.Format(time.RFC3339)).
			WithDetail("toDate", to.Format(time.RFC3339))
	}

	var imported, exported []ProductTotal
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if imported, err = s.repo.AggregateImported(ctx, *from, *to); err != nil {
			return fmt.Errorf("aggregate imported: %w", err)
		}
		if exported, err = s.repo.AggregateExported(ctx, *from, *to); err != nil {
			return fmt.Errorf("aggregate exported: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rows := Reconcile(imported, exported)

	report := &StockMovementReport{
		FromDate: *from,
		ToDate:   *to,
		Rows:     rows,
		RowCount: len(rows),
		NoData:   len(rows) == 0,
	}

	for _, row := range rows {
		report.TotalImported += row.ImportedQuantity
		report.TotalExported += row.ExportedQuantity
	}

	return report, nil
}
