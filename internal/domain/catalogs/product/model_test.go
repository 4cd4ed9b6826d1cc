package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
)

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	p := NewProduct("BOLT-M8", "Bolt M8", "Galvanized M8 hex bolt")
	assert.NoError(t, p.Validate(ctx))

	missing := NewProduct("BOLT-M8", "Bolt M8", "")
	err := missing.Validate(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	negative := NewProduct("BOLT-M8", "Bolt M8", "Bolt")
	negative.OnHandQuantity = decimal.NewFromInt(-1)
	err = negative.Validate(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestProduct_ValidateRequiresCatalogFields(t *testing.T) {
	ctx := context.Background()

	noName := NewProduct("CODE", "", "desc")
	assert.Error(t, noName.Validate(ctx))

	noCode := NewProduct("", "Name", "desc")
	assert.Error(t, noCode.Validate(ctx))
}

func TestProduct_SetCategory(t *testing.T) {
	p := NewProduct("BOLT-M8", "Bolt M8", "Bolt")

	p.SetCategory("abc")
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, "abc", *p.CategoryID)

	p.SetCategory("")
	assert.Nil(t, p.CategoryID)
}
