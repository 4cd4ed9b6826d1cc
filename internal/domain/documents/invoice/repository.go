package invoice

import (
	"context"
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// ListFilter contains filtering options for invoice lists.
type ListFilter struct {
	// Search matches number, name and customer name
	Search string

	// Date range over the business date (closed interval)
	DateFrom *time.Time
	DateTo   *time.Time

	// IncludeDeleted includes soft-deleted documents
	IncludeDeleted bool

	// OrderBy specifies sorting (defaults to "date DESC")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// Repository defines the interface for invoice persistence.
// One implementation instance serves one direction (one pair of tables).
type Repository interface {
	// Create inserts a new invoice header
	Create(ctx context.Context, inv *Invoice) error

	// GetByID retrieves an invoice header (without lines)
	GetByID(ctx context.Context, docID id.ID) (*Invoice, error)

	// Update modifies an invoice header (optimistic locking)
	Update(ctx context.Context, inv *Invoice) error

	// Delete soft-deletes an invoice header
	Delete(ctx context.Context, docID id.ID) error

	// List retrieves invoice headers with filtering
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)

	// GetLines retrieves all lines of an invoice ordered by line number
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	// SaveLines replaces the line set of an invoice
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// FindLine locates a single line and its parent invoice id
	FindLine(ctx context.Context, lineID id.ID) (Line, id.ID, error)

	// CountLines counts lines of an invoice
	CountLines(ctx context.Context, docID id.ID) (int64, error)

	// Exists checks if an invoice header with given ID exists
	Exists(ctx context.Context, docID id.ID) (bool, error)
}
