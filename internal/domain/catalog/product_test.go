package catalog

import (
	"testing"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()
	branchID := uuid.New()
	price := valueobject.NewMoneyBRLFromFloat(19.90)

	t.Run("creates product successfully", func(t *testing.T) {
		product, err := NewProduct(tenantID, branchID, "Shampoo 500ml", price, 10)

		require.NoError(t, err)
		assert.Equal(t, "Shampoo 500ml", product.Name)
		assert.Equal(t, 10, product.Stock)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.True(t, product.SellingPrice.Equal(price.Amount()))
	})

	t.Run("trims whitespace from name", func(t *testing.T) {
		product, err := NewProduct(tenantID, branchID, "  Shampoo  ", price, 1)

		require.NoError(t, err)
		assert.Equal(t, "Shampoo", product.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(tenantID, branchID, "   ", price, 1)
		assert.Error(t, err)
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct(tenantID, branchID, "Shampoo", price, -1)
		assert.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct(tenantID, branchID, "Shampoo", valueobject.NewMoneyBRLFromFloat(-1), 1)
		assert.Error(t, err)
	})
}

func TestProductStock(t *testing.T) {
	product, err := NewProduct(uuid.New(), uuid.New(), "Shampoo", valueobject.NewMoneyBRLFromFloat(19.90), 5)
	require.NoError(t, err)

	t.Run("adjusts stock by delta", func(t *testing.T) {
		require.NoError(t, product.AdjustStock(-3))
		assert.Equal(t, 2, product.Stock)

		require.NoError(t, product.AdjustStock(10))
		assert.Equal(t, 12, product.Stock)
	})

	t.Run("rejects adjustment below zero", func(t *testing.T) {
		err := product.AdjustStock(-100)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("reports low stock against threshold", func(t *testing.T) {
		require.NoError(t, product.SetMinStock(20))
		assert.True(t, product.IsBelowMinStock())

		require.NoError(t, product.SetMinStock(5))
		assert.False(t, product.IsBelowMinStock())
	})
}
