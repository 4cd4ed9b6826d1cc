package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
)

// fakeRepo serves fixed aggregates and records how it was called.
type fakeRepo struct {
	imported []ProductTotal
	exported []ProductTotal
	calls    int
}

func (f *fakeRepo) AggregateImported(ctx context.Context, from, to time.Time) ([]ProductTotal, error) {
	f.calls++
	return f.imported, nil
}

func (f *fakeRepo) AggregateExported(ctx context.Context, from, to time.Time) ([]ProductTotal, error) {
	f.calls++
	return f.exported, nil
}

// fakeTxManager runs the callback directly; no database involved.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func dateAt(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStockMovement_MissingBoundRejected(t *testing.T) {
	svc := NewService(&fakeRepo{}, fakeTxManager{})
	from := dateAt("2026-01-01")

	_, err := svc.StockMovement(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidRange(err))

	_, err = svc.StockMovement(context.Background(), &from, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidRange(err))
}

func TestStockMovement_InvertedRangeRejected(t *testing.T) {
	svc := NewService(&fakeRepo{}, fakeTxManager{})
	from := dateAt("2026-02-01")
	to := dateAt("2026-01-01")

	_, err := svc.StockMovement(context.Background(), &from, &to)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidRange(err))
}

func TestStockMovement_NoData(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeTxManager{})
	from := dateAt("2026-01-01")
	to := dateAt("2026-01-31")

	report, err := svc.StockMovement(context.Background(), &from, &to)
	require.NoError(t, err)

	assert.True(t, report.NoData)
	assert.Zero(t, report.RowCount)
	assert.Empty(t, report.Rows)
	assert.Equal(t, 2, repo.calls, "both sides must be aggregated even when empty")
}

func TestStockMovement_ReconcilesAndSummarizes(t *testing.T) {
	bolt := id.New()
	nut := id.New()

	repo := &fakeRepo{
		imported: []ProductTotal{
			{ProductID: bolt, ProductName: "Bolt", Quantity: 500},
			{ProductID: nut, ProductName: "Nut", Quantity: 300},
		},
		exported: []ProductTotal{
			{ProductID: bolt, ProductName: "Bolt", Quantity: 40},
		},
	}
	svc := NewService(repo, fakeTxManager{})
	from := dateAt("2026-01-01")
	to := dateAt("2026-01-31")

	report, err := svc.StockMovement(context.Background(), &from, &to)
	require.NoError(t, err)

	assert.False(t, report.NoData)
	assert.Equal(t, 2, report.RowCount)
	assert.Equal(t, int64(800), report.TotalImported)
	assert.Equal(t, int64(40), report.TotalExported)
	assert.Equal(t, from, report.FromDate)
	assert.Equal(t, to, report.ToDate)
}

func TestStockMovement_SameDayRangeAllowed(t *testing.T) {
	svc := NewService(&fakeRepo{}, fakeTxManager{})
	day := dateAt("2026-03-15")

	report, err := svc.StockMovement(context.Background(), &day, &day)
	require.NoError(t, err)
	assert.True(t, report.NoData)
}

func TestStockMovement_ReadIsIdempotent(t *testing.T) {
	bolt := id.New()
	repo := &fakeRepo{
		imported: []ProductTotal{{ProductID: bolt, ProductName: "Bolt", Quantity: 10}},
	}
	svc := NewService(repo, fakeTxManager{})
	from := dateAt("2026-01-01")
	to := dateAt("2026-01-31")

	first, err := svc.StockMovement(context.Background(), &from, &to)
	require.NoError(t, err)

	second, err := svc.StockMovement(context.Background(), &from, &to)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.TotalImported, second.TotalImported)
}
