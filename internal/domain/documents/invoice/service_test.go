package invoice

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	headers map[id.ID]*Invoice
	lines   map[id.ID][]Line
}

func newMemRepo() *memRepo {
	return &memRepo{
		headers: make(map[id.ID]*Invoice),
		lines:   make(map[id.ID][]Line),
	}
}

func (r *memRepo) Create(ctx context.Context, inv *Invoice) error {
	cp := *inv
	r.headers[inv.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	inv, ok := r.headers[docID]
	if !ok || inv.DeletionMark {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	cp := *inv
	cp.Lines = nil
	return &cp, nil
}

func (r *memRepo) Update(ctx context.Context, inv *Invoice) error {
	if _, ok := r.headers[inv.ID]; !ok {
		return apperror.NewNotFound("invoice", inv.ID.String())
	}
	cp := *inv
	r.headers[inv.ID] = &cp
	return nil
}

func (r *memRepo) Delete(ctx context.Context, docID id.ID) error {
	inv, ok := r.headers[docID]
	if !ok {
		return apperror.NewNotFound("invoice", docID.String())
	}
	inv.DeletionMark = true
	return nil
}

func (r *memRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	result := domain.ListResult[*Invoice]{Limit: filter.Limit, Offset: filter.Offset}
	for _, inv := range r.headers {
		if inv.DeletionMark && !filter.IncludeDeleted {
			continue
		}
		cp := *inv
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return append([]Line(nil), r.lines[docID]...), nil
}

func (r *memRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = append([]Line(nil), lines...)
	return nil
}

func (r *memRepo) FindLine(ctx context.Context, lineID id.ID) (Line, id.ID, error) {
	for docID, lines := range r.lines {
		for _, line := range lines {
			if line.LineID == lineID {
				return line, docID, nil
			}
		}
	}
	return Line{}, id.Nil(), apperror.NewNotFound("invoice line", lineID.String())
}

func (r *memRepo) CountLines(ctx context.Context, docID id.ID) (int64, error) {
	return int64(len(r.lines[docID])), nil
}

func (r *memRepo) Exists(ctx context.Context, docID id.ID) (bool, error) {
	inv, ok := r.headers[docID]
	return ok && !inv.DeletionMark, nil
}

// memProducts resolves a fixed set of product ids.
type memProducts struct {
	known map[id.ID]bool
}

func (m *memProducts) Exists(ctx context.Context, productID id.ID) (bool, error) {
	return m.known[productID], nil
}

// passTxManager runs callbacks directly.
type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(direction Direction) (*Service, *memRepo, *memProducts) {
	repo := newMemRepo()
	products := &memProducts{known: make(map[id.ID]bool)}
	svc := NewService(direction, repo, products, passTxManager{})
	return svc, repo, products
}

func knownProduct(products *memProducts) id.ID {
	productID := id.New()
	products.known[productID] = true
	return productID
}

func TestService_CreateGeneratesNumber(t *testing.T) {
	svc, repo, products := newTestService(DirectionInput)
	ctx := context.Background()

	inv := NewInvoice(DirectionInput, "Purchase", "Acme", "")
	inv.AddLine(knownProduct(products), 5, 10)

	require.NoError(t, svc.Create(ctx, inv))

	assert.True(t, strings.HasPrefix(inv.Number, "IN-"), "got %q", inv.Number)
	assert.Contains(t, repo.headers, inv.ID)
	assert.Len(t, repo.lines[inv.ID], 1)
}

func TestService_CreateRejectsUnknownProduct(t *testing.T) {
	svc, _, _ := newTestService(DirectionInput)
	ctx := context.Background()

	inv := NewInvoice(DirectionInput, "Purchase", "Acme", "")
	inv.AddLine(id.New(), 5, 10)

	err := svc.Create(ctx, inv)
	require.Error(t, err)
	assert.True(t, apperror.IsReferentialIntegrity(err))
}

func TestService_AddLineOnMissingInvoice(t *testing.T) {
	svc, _, products := newTestService(DirectionInput)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, id.New(), knownProduct(products), 5, 10)
	require.Error(t, err)
	assert.True(t, apperror.IsReferentialIntegrity(err))
}

func TestService_AddLineRejectsNegativeAmounts(t *testing.T) {
	svc, _, products := newTestService(DirectionInput)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, id.New(), knownProduct(products), -1, 10)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.AddLine(ctx, id.New(), knownProduct(products), 1, -10)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestService_AddLineUpdatesHeaderTotals(t *testing.T) {
	svc, repo, products := newTestService(DirectionOutput)
	ctx := context.Background()

	inv := NewInvoice(DirectionOutput, "Sale", "Bob", "")
	require.NoError(t, svc.Create(ctx, inv))

	line, err := svc.AddLine(ctx, inv.ID, knownProduct(products), 40, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(800), line.TotalPrice)

	header := repo.headers[inv.ID]
	assert.Equal(t, int64(40), header.TotalQuantity)
	assert.Equal(t, int64(800), header.TotalAmount)
}

func TestService_UpdateLineRecomputesTotals(t *testing.T) {
	svc, repo, products := newTestService(DirectionInput)
	ctx := context.Background()

	inv := NewInvoice(DirectionInput, "Purchase", "Acme", "")
	require.NoError(t, svc.Create(ctx, inv))

	line, err := svc.AddLine(ctx, inv.ID, knownProduct(products), 10, 5)
	require.NoError(t, err)

	updated, err := svc.UpdateLine(ctx, line.LineID, 3, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(300), updated.TotalPrice)

	header := repo.headers[inv.ID]
	assert.Equal(t, int64(3), header.TotalQuantity)
	assert.Equal(t, int64(300), header.TotalAmount)
}

func TestService_DeleteLineThenHeader(t *testing.T) {
	svc, repo, products := newTestService(DirectionInput)
	ctx := context.Background()

	inv := NewInvoice(DirectionInput, "Purchase", "Acme", "")
	require.NoError(t, svc.Create(ctx, inv))

	line, err := svc.AddLine(ctx, inv.ID, knownProduct(products), 10, 5)
	require.NoError(t, err)

	// Header delete is blocked while the line exists
	err = svc.Delete(ctx, inv.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsReferentialIntegrity(err))

	require.NoError(t, svc.DeleteLine(ctx, line.LineID))

	header := repo.headers[inv.ID]
	assert.Equal(t, int64(0), header.TotalQuantity)
	assert.Equal(t, int64(0), header.TotalAmount)

	require.NoError(t, svc.Delete(ctx, inv.ID))
	assert.True(t, repo.headers[inv.ID].DeletionMark)
}

func TestService_AddLineOnDeletedInvoice(t *testing.T) {
	svc, _, products := newTestService(DirectionInput)
	ctx := context.Background()

	inv := NewInvoice(DirectionInput, "Purchase", "Acme", "")
	require.NoError(t, svc.Create(ctx, inv))
	require.NoError(t, svc.Delete(ctx, inv.ID))

	_, err := svc.AddLine(ctx, inv.ID, knownProduct(products), 5, 10)
	require.Error(t, err)
	assert.True(t, apperror.IsReferentialIntegrity(err))
}

func TestService_DeleteLineNotFound(t *testing.T) {
	svc, _, _ := newTestService(DirectionInput)

	err := svc.DeleteLine(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_GetByIDLoadsLines(t *testing.T) {
	svc, _, products := newTestService(DirectionInput)
	ctx := context.Background()

	inv := NewInvoice(DirectionInput, "Purchase", "Acme", "")
	inv.AddLine(knownProduct(products), 2, 3)
	require.NoError(t, svc.Create(ctx, inv))

	got, err := svc.GetByID(ctx, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, DirectionInput, got.Direction)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(6), got.Lines[0].TotalPrice)
}
