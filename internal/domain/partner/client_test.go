package partner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tenantID := uuid.New()
	branchID := uuid.New()

	t.Run("creates individual client successfully", func(t *testing.T) {
		client, err := NewClient(tenantID, branchID, "Maria Silva", ClientTypeIndividual)

		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "Maria Silva", client.Name)
		assert.Equal(t, ClientTypeIndividual, client.Type)
		assert.Equal(t, DebtStatusRegular, client.DebtStatus)
		assert.Equal(t, tenantID, client.TenantID)
		assert.Equal(t, branchID, client.BranchID)
		assert.True(t, client.OverdueAmount.IsZero())
		assert.Nil(t, client.FirstOverdueDate)
	})

	t.Run("creates company client successfully", func(t *testing.T) {
		client, err := NewClient(tenantID, branchID, "Comercial Sul Ltda", ClientTypeCompany)

		require.NoError(t, err)
		assert.Equal(t, ClientTypeCompany, client.Type)
	})

	t.Run("defaults empty type to individual", func(t *testing.T) {
		client, err := NewClient(tenantID, branchID, "Maria Silva", "")

		require.NoError(t, err)
		assert.Equal(t, ClientTypeIndividual, client.Type)
	})

	t.Run("fails with short name", func(t *testing.T) {
		client, err := NewClient(tenantID, branchID, "M", ClientTypeIndividual)

		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("fails with nil branch", func(t *testing.T) {
		client, err := NewClient(tenantID, uuid.Nil, "Maria Silva", ClientTypeIndividual)

		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		client, err := NewClient(tenantID, branchID, "Maria Silva", "partnership")

		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestApplyDebtSummary(t *testing.T) {
	client, err := NewClient(uuid.New(), uuid.New(), "Maria Silva", ClientTypeIndividual)
	require.NoError(t, err)

	first := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	summary := DebtSummary{
		Status:                   DebtStatusDebtor,
		OverdueAmount:            decimal.NewFromFloat(150.50),
		OverdueInstallmentsCount: 2,
		FirstOverdueDate:         &first,
		ComputedAt:               time.Now(),
	}

	client.ApplyDebtSummary(summary)

	assert.Equal(t, DebtStatusDebtor, client.DebtStatus)
	assert.True(t, client.OverdueAmount.Equal(decimal.NewFromFloat(150.50)))
	assert.Equal(t, 2, client.OverdueInstallmentsCount)
	require.NotNil(t, client.FirstOverdueDate)
	assert.Equal(t, first, *client.FirstOverdueDate)
	assert.NotNil(t, client.DebtStatusUpdatedAt)
	assert.True(t, client.HasDebt())
}
