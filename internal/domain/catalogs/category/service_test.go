package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// memRepo is an in-memory category repository for service tests.
type memRepo struct {
	items map[id.ID]*Category
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[id.ID]*Category)}
}

func (r *memRepo) Create(ctx context.Context, c *Category) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, entityID id.ID) (*Category, error) {
	c, ok := r.items[entityID]
	if !ok {
		return nil, apperror.NewNotFound("category", entityID.String())
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) GetByCode(ctx context.Context, code string) (*Category, error) {
	for _, c := range r.items {
		if c.Code == code && !c.DeletionMark {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("category", code)
}

func (r *memRepo) Update(ctx context.Context, c *Category) error {
	if _, ok := r.items[c.ID]; !ok {
		return apperror.NewNotFound("category", c.ID.String())
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memRepo) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	c, ok := r.items[entityID]
	if !ok {
		return apperror.NewNotFound("category", entityID.String())
	}
	c.DeletionMark = marked
	return nil
}

func (r *memRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error) {
	result := domain.ListResult[*Category]{Limit: filter.Limit, Offset: filter.Offset}
	for _, c := range r.items {
		if c.DeletionMark && !filter.IncludeDeleted {
			continue
		}
		cp := *c
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	c, ok := r.items[entityID]
	return ok && !c.DeletionMark, nil
}

func (r *memRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	for _, c := range r.items {
		if c.Code == code && !c.DeletionMark {
			return true, nil
		}
	}
	return false, nil
}

// fixedCounter reports a fixed product count for any category.
type fixedCounter struct {
	count int64
}

func (f fixedCounter) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return f.count, nil
}

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestService_CreateAndGet(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fixedCounter{}, passTxManager{})
	ctx := context.Background()

	c := NewCategory("HW", "Hardware")
	require.NoError(t, svc.Create(ctx, c))

	got, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hardware", got.Name)
}

func TestService_CreateRejectsDuplicateCode(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fixedCounter{}, passTxManager{})
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, NewCategory("HW", "Hardware")))

	err := svc.Create(ctx, NewCategory("HW", "Hardware again"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestService_CreateRejectsMissingFields(t *testing.T) {
	svc := NewService(newMemRepo(), fixedCounter{}, passTxManager{})

	err := svc.Create(context.Background(), NewCategory("", "Hardware"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestService_DeleteBlockedWhileReferenced(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fixedCounter{count: 3}, passTxManager{})
	ctx := context.Background()

	c := NewCategory("HW", "Hardware")
	require.NoError(t, svc.Create(ctx, c))

	err := svc.Delete(ctx, c.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsReferentialIntegrity(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, int64(3), appErr.Details["product_count"])
}

func TestService_DeleteUnreferenced(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fixedCounter{count: 0}, passTxManager{})
	ctx := context.Background()

	c := NewCategory("HW", "Hardware")
	require.NoError(t, svc.Create(ctx, c))

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.True(t, repo.items[c.ID].DeletionMark)
}

func TestService_DeleteMissing(t *testing.T) {
	svc := NewService(newMemRepo(), fixedCounter{}, passTxManager{})

	err := svc.Delete(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
