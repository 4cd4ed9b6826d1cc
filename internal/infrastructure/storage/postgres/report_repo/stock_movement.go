// Package report_repo provides PostgreSQL aggregation queries for reports.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
)

// StockMovementRepo implements reports.Repository by aggregating invoice
// lines grouped by product over both ledger sides.
type StockMovementRepo struct {
	txManager *postgres.TxManager
}

// Compile-time check.
var _ reports.Repository = (*StockMovementRepo)(nil)

// NewStockMovementRepo creates a new stock movement aggregation repository.
func NewStockMovementRepo(txManager *postgres.TxManager) *StockMovementRepo {
	return &StockMovementRepo{txManager: txManager}
}

// AggregateImported sums inbound quantities per product over [from, to].
func (r *StockMovementRepo) AggregateImported(ctx context.Context, from, to time.Time) ([]reports.ProductTotal, error) {
	return r.aggregate(ctx, document_repo.InputInvoiceTable, document_repo.InputInvoiceLineTable, from, to)
}

// AggregateExported sums outbound quantities per product over [from, to].
func (r *StockMovementRepo) AggregateExported(ctx context.Context, from, to time.Time) ([]reports.ProductTotal, error) {
	return r.aggregate(ctx, document_repo.OutputInvoiceTable, document_repo.OutputInvoiceLineTable, from, to)
}

// aggregateQuery builds the per-product quantity sum for one side of the
// ledger over the closed interval [from, to] on the invoice business date.
// Products deleted since the movement was recorded still aggregate; their
// name degrades to a placeholder via LEFT JOIN + COALESCE.
func aggregateQuery(invoiceTable, lineTable string, from, to time.Time) squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(
			"l.product_id AS product_id",
			"COALESCE(p.code, '') AS product_code",
			fmt.Sprintf("COALESCE(p.name, '%s') AS product_name", reports.DeletedProductLabel),
			"SUM(l.quantity) AS quantity",
		).
		From(lineTable+" l").
		Join(invoiceTable+" d ON d.id = l.invoice_id").
		LeftJoin("cat_products p ON p.id = l.product_id AND NOT p.deletion_mark").
		Where(squirrel.Eq{"d.deletion_mark": false}).
		Where(squirrel.GtOrEq{"d.date": from}).
		Where(squirrel.LtOrEq{"d.date": to}).
		GroupBy("l.product_id", "p.code", "p.name").
		OrderBy("l.product_id")
}

// aggregate runs the aggregation query and scans the totals.
func (r *StockMovementRepo) aggregate(ctx context.Context, invoiceTable, lineTable string, from, to time.Time) ([]reports.ProductTotal, error) {
	sql, args, err := aggregateQuery(invoiceTable, lineTable, from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build aggregate: %w", err)
	}

	var totals []reports.ProductTotal
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &totals, sql, args...); err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", lineTable, err)
	}

	return totals, nil
}
