package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

func newTestRepo() *BaseCatalogRepo[*struct{}] {
	return NewBaseCatalogRepo(
		nil,
		"cat_items",
		[]string{"id", "deletion_mark", "version", "code", "name"},
		func() *struct{} { return &struct{}{} },
	)
}

func TestBaseSelect(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.baseSelect().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, deletion_mark, version, code, name FROM cat_items", sql)
	assert.Empty(t, args)
}

func TestApplyListFilter_Default(t *testing.T) {
	repo := newTestRepo()

	q := repo.applyListFilter(repo.baseSelect(), domain.ListFilter{})
	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE deletion_mark = $1")
	assert.Equal(t, []any{false}, args)
}

func TestApplyListFilter_IncludeDeleted(t *testing.T) {
	repo := newTestRepo()

	q := repo.applyListFilter(repo.baseSelect(), domain.ListFilter{IncludeDeleted: true})
	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "deletion_mark = ")
	assert.Empty(t, args)
}

func TestApplyListFilter_Search(t *testing.T) {
	repo := newTestRepo()

	q := repo.applyListFilter(repo.baseSelect(), domain.ListFilter{Search: "bolt"})
	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "(name ILIKE $2 OR code ILIKE $3)")
	assert.Equal(t, []any{false, "%bolt%", "%bolt%"}, args)
}

func TestApplyListFilter_IDs(t *testing.T) {
	repo := newTestRepo()

	ids := []id.ID{id.New(), id.New()}
	q := repo.applyListFilter(repo.baseSelect(), domain.ListFilter{IDs: ids})
	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "id IN ($2,$3)")
	require.Len(t, args, 3)
	assert.Equal(t, ids[0], args[1])
	assert.Equal(t, ids[1], args[2])
}
