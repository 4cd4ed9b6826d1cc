// Package document_repo provides PostgreSQL implementations for document repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/invoice"
	"stockbook/internal/infrastructure/storage/postgres"
)

// Table pairs for the two invoice directions. Input and output invoices
// share a shape but never share a table or an id space.
const (
	InputInvoiceTable      = "doc_input_invoices"
	InputInvoiceLineTable  = "doc_input_invoice_lines"
	OutputInvoiceTable     = "doc_output_invoices"
	OutputInvoiceLineTable = "doc_output_invoice_lines"
)

// InvoiceRepo implements invoice.Repository over one header/lines table pair.
type InvoiceRepo struct {
	txManager  *postgres.TxManager
	direction  invoice.Direction
	table      string
	linesTable string
	selectCols []string
	lineCols   []string
}

// Compile-time check.
var _ invoice.Repository = (*InvoiceRepo)(nil)

// NewInputInvoiceRepo creates the repository for input (inbound) invoices.
func NewInputInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return newInvoiceRepo(txManager, invoice.DirectionInput, InputInvoiceTable, InputInvoiceLineTable)
}

// NewOutputInvoiceRepo creates the repository for output (outbound) invoices.
func NewOutputInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return newInvoiceRepo(txManager, invoice.DirectionOutput, OutputInvoiceTable, OutputInvoiceLineTable)
}

func newInvoiceRepo(txManager *postgres.TxManager, direction invoice.Direction, table, linesTable string) *InvoiceRepo {
	return &InvoiceRepo{
		txManager:  txManager,
		direction:  direction,
		table:      table,
		linesTable: linesTable,
		selectCols: postgres.ExtractDBColumns[invoice.Invoice](),
		lineCols:   postgres.ExtractDBColumns[invoice.Line](),
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *InvoiceRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *InvoiceRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.table)
}

// Create inserts a new invoice header. Lines are saved separately via SaveLines.
func (r *InvoiceRepo) Create(ctx context.Context, inv *Invoice) error {
	data := postgres.StructToMap(inv)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.table).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.table, err)
	}

	return nil
}

// GetByID retrieves an invoice header (without lines). Soft-deleted headers
// are not found, so nothing can be mutated through a marked invoice.
func (r *InvoiceRepo) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	inv := &invoice.Invoice{}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": docID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(r.table, docID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}

	inv.Direction = r.direction
	return inv, nil
}

// Update modifies an invoice header with optimistic locking.
func (r *InvoiceRepo) Update(ctx context.Context, inv *Invoice) error {
	data := postgres.StructToMap(inv)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("invoice has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.table).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": inv.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.table, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.table, inv.ID)
	}

	return nil
}

// Delete soft-deletes an invoice header.
func (r *InvoiceRepo) Delete(ctx context.Context, docID id.ID) error {
	q := r.Builder().
		Update(r.table).
		Set("deletion_mark", true).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.table, docID.String())
	}

	return nil
}

// List retrieves invoice headers with filtering and pagination.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*Invoice], error) {
	result := domain.ListResult[*invoice.Invoice]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"customer_name": pattern},
		})
	}

	// Closed interval over the business date
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy := "date DESC, number DESC"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	for _, inv := range result.Items {
		inv.Direction = r.direction
	}

	return result, nil
}

// GetLines retrieves all lines of an invoice ordered by line number.
func (r *InvoiceRepo) GetLines(ctx context.Context, docID id.ID) ([]invoice.Line, error) {
	q := r.Builder().
		Select(r.lineCols...).
		From(r.linesTable).
		Where(squirrel.Eq{"invoice_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoice.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the full line set of an invoice (delete + insert).
// Callers run this inside the same transaction as the header update so
// totals and lines never diverge.
func (r *InvoiceRepo) SaveLines(ctx context.Context, docID id.ID, lines []invoice.Line) error {
	querier := r.txManager.GetQuerier(ctx)

	delQ := r.Builder().
		Delete(r.linesTable).
		Where(squirrel.Eq{"invoice_id": docID})

	delSQL, delArgs, err := delQ.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	insQ := r.Builder().
		Insert(r.linesTable).
		Columns("invoice_id", "line_id", "line_no", "product_id", "quantity", "unit_price", "total_price")

	for _, line := range lines {
		insQ = insQ.Values(docID, line.LineID, line.LineNo, line.ProductID, line.Quantity, line.UnitPrice, line.TotalPrice)
	}

	insSQL, insArgs, err := insQ.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := querier.Exec(ctx, insSQL, insArgs...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// lineWithParent carries a line together with its parent invoice id.
type lineWithParent struct {
	invoice.Line
	InvoiceID id.ID `db:"invoice_id"`
}

// FindLine locates a single line by its id and returns it with the parent
// invoice id.
func (r *InvoiceRepo) FindLine(ctx context.Context, lineID id.ID) (invoice.Line, id.ID, error) {
	cols := append([]string{}, r.lineCols...)
	cols = append(cols, "invoice_id")

	q := r.Builder().
		Select(cols...).
		From(r.linesTable).
		Where(squirrel.Eq{"line_id": lineID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return invoice.Line{}, id.Nil(), fmt.Errorf("build query: %w", err)
	}

	var row lineWithParent
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return invoice.Line{}, id.Nil(), apperror.NewNotFound("invoice line", lineID.String())
		}
		return invoice.Line{}, id.Nil(), fmt.Errorf("find line: %w", err)
	}

	return row.Line, row.InvoiceID, nil
}

// CountLines counts lines of an invoice.
func (r *InvoiceRepo) CountLines(ctx context.Context, docID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(r.linesTable).
		Where(squirrel.Eq{"invoice_id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lines: %w", err)
	}

	return count, nil
}

// Exists checks if a non-deleted invoice header with given ID exists.
func (r *InvoiceRepo) Exists(ctx context.Context, docID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.table).
		Where(squirrel.Eq{"id": docID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}

// Invoice aliases the domain type for readability of signatures above.
type Invoice = invoice.Invoice
