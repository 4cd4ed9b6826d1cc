package reports

import (
	"context"
	"time"
)

// Repository defines the aggregation data access interface.
// Both methods sum line quantities grouped by product over all lines whose
// parent invoice date falls inside the closed interval [from, to].
type Repository interface {
	// AggregateImported sums input invoice line quantities per product.
	AggregateImported(ctx context.Context, from, to time.Time) ([]ProductTotal, error)

	// AggregateExported sums output invoice line quantities per product.
	AggregateExported(ctx context.Context, from, to time.Time) ([]ProductTotal, error)
}
