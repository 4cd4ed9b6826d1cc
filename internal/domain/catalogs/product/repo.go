package product

import (
	"context"

	"stockbook/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListByCategory retrieves products belonging to a category.
	ListByCategory(ctx context.Context, categoryID string, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// CountByCategory counts products referencing a category.
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}
