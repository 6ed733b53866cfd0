package finance

import (
	"testing"

	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinancialEntry(t *testing.T) {
	tenantID := uuid.New()
	branchID := uuid.New()
	userID := uuid.New()
	amount := valueobject.NewMoneyBRLFromFloat(25.00)

	t.Run("creates income entry", func(t *testing.T) {
		entry, err := NewFinancialEntry(tenantID, branchID, userID, EntryTypeIncome, amount, "Venda realizada", CategorySales, EntryStatusPaid)

		require.NoError(t, err)
		assert.Equal(t, EntryTypeIncome, entry.Type)
		assert.Equal(t, EntryStatusPaid, entry.Status)
		assert.True(t, entry.Amount.Equal(amount.Amount()))
		assert.False(t, entry.EntryDate.IsZero())
		assert.Nil(t, entry.ReferenceID)
	})

	t.Run("links reference", func(t *testing.T) {
		entry, err := NewFinancialEntry(tenantID, branchID, userID, EntryTypeIncome, amount, "Venda realizada", CategorySales, EntryStatusPaid)
		require.NoError(t, err)

		saleID := uuid.New()
		entry.SetReference(saleID, ReferenceTypeSale)

		require.NotNil(t, entry.ReferenceID)
		assert.Equal(t, saleID, *entry.ReferenceID)
		assert.Equal(t, ReferenceTypeSale, entry.ReferenceType)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewFinancialEntry(tenantID, branchID, userID, EntryTypeExpense, valueobject.ZeroBRL(), "Despesa", "outros", EntryStatusPending)
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewFinancialEntry(tenantID, branchID, userID, "transfer", amount, "Entrada", "outros", EntryStatusPaid)
		assert.Error(t, err)
	})

	t.Run("rejects blank description", func(t *testing.T) {
		_, err := NewFinancialEntry(tenantID, branchID, userID, EntryTypeIncome, amount, "   ", "outros", EntryStatusPaid)
		assert.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewFinancialEntry(tenantID, branchID, userID, EntryTypeIncome, amount, "Entrada", "outros", "settled")
		assert.Error(t, err)
	})
}
