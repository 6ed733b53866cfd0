package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedClient(t *testing.T, db *gorm.DB, tenantID uuid.UUID, name string) *partner.Client {
	t.Helper()
	client, err := partner.NewClient(tenantID, uuid.New(), name, partner.ClientTypeIndividual)
	require.NoError(t, err)
	require.NoError(t, NewGormClientRepository(db).Save(context.Background(), client))
	return client
}

func TestGormClientRepository_UpdateDebtSummary(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)

	tenantID := uuid.New()
	client := seedClient(t, db, tenantID, "Marcos Pereira")

	firstOverdue := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	client.ApplyDebtSummary(partner.DebtSummary{
		Status:                   partner.DebtStatusDebtor,
		OverdueAmount:            decimal.NewFromFloat(450.00),
		OverdueInstallmentsCount: 3,
		FirstOverdueDate:         &firstOverdue,
		ComputedAt:               time.Now(),
	})
	require.NoError(t, repo.UpdateDebtSummary(ctx, client))

	reloaded, err := repo.FindByIDForTenant(ctx, tenantID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, partner.DebtStatusDebtor, reloaded.DebtStatus)
	assert.True(t, reloaded.OverdueAmount.Equal(decimal.NewFromFloat(450.00)))
	assert.Equal(t, 3, reloaded.OverdueInstallmentsCount)
	require.NotNil(t, reloaded.FirstOverdueDate)
	assert.Equal(t, "2026-07-01", reloaded.FirstOverdueDate.Format("2006-01-02"))
	assert.NotNil(t, reloaded.DebtStatusUpdatedAt)

	// back to regular clears everything
	client.ApplyDebtSummary(partner.DebtSummary{
		Status:        partner.DebtStatusRegular,
		OverdueAmount: decimal.Zero,
		ComputedAt:    time.Now(),
	})
	require.NoError(t, repo.UpdateDebtSummary(ctx, client))

	reloaded, err = repo.FindByIDForTenant(ctx, tenantID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, partner.DebtStatusRegular, reloaded.DebtStatus)
	assert.True(t, reloaded.OverdueAmount.IsZero())
	assert.Nil(t, reloaded.FirstOverdueDate)
}

func TestGormClientRepository_FindOverdue(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)

	tenantID := uuid.New()
	regular := seedClient(t, db, tenantID, "Em Dia")
	debtor := seedClient(t, db, tenantID, "Atrasado")

	firstOverdue := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	debtor.ApplyDebtSummary(partner.DebtSummary{
		Status:                   partner.DebtStatusDebtor,
		OverdueAmount:            decimal.NewFromFloat(100.00),
		OverdueInstallmentsCount: 1,
		FirstOverdueDate:         &firstOverdue,
		ComputedAt:               time.Now(),
	})
	require.NoError(t, repo.UpdateDebtSummary(ctx, debtor))

	overdue, err := repo.FindOverdue(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, debtor.ID, overdue[0].ID)
	assert.NotEqual(t, regular.ID, overdue[0].ID)
}

func TestGormClientRepository_FindIDsWithSales(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)

	tenantID := uuid.New()
	withSale := seedClient(t, db, tenantID, "Com Venda")
	seedClient(t, db, tenantID, "Sem Venda")
	seedSaleForClient(t, db, tenantID, withSale.ID)

	ids, err := repo.FindIDsWithSales(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, withSale.ID, ids[0])
}

func TestGormClientRepository_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)

	tenantA := uuid.New()
	client := seedClient(t, db, tenantA, "Cliente A")

	_, err := repo.FindByIDForTenant(ctx, uuid.New(), client.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
