package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSaleForClient(t *testing.T, db *gorm.DB, tenantID, clientID uuid.UUID) *trade.Sale {
	t.Helper()
	sale, err := trade.NewSale(tenantID, uuid.New(), uuid.New(), trade.PaymentMethodBoleto, 3)
	require.NoError(t, err)
	sale.SetClient(clientID, "Cliente Teste")
	_, err = sale.AddItem(uuid.New(), "Argamassa", 3, valueobject.NewMoneyBRLFromFloat(100), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, sale.SetAmounts(decimal.Zero, decimal.Zero, decimal.NewFromInt(300)))
	require.NoError(t, NewGormSaleRepository(db).Save(context.Background(), sale))
	return sale
}

func seedInstallment(t *testing.T, db *gorm.DB, sale *trade.Sale, number int, status trade.InstallmentStatus, dueDate time.Time) *trade.Installment {
	t.Helper()
	inst, err := trade.NewInstallment(sale.TenantID, sale.BranchID, uuid.New(), sale.ID, number, 3,
		decimal.NewFromInt(100), dueDate)
	require.NoError(t, err)
	if status == trade.InstallmentStatusPaid {
		require.NoError(t, inst.MarkPaid())
	}
	require.NoError(t, NewGormInstallmentRepository(db).Save(context.Background(), inst))
	return inst
}

func TestGormInstallmentRepository_FindOverdueByClient(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormInstallmentRepository(db)

	tenantID := uuid.New()
	clientID := uuid.New()
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	sale := seedSaleForClient(t, db, tenantID, clientID)
	pastDue := seedInstallment(t, db, sale, 1, trade.InstallmentStatusPending, today.AddDate(0, 0, -10))
	seedInstallment(t, db, sale, 2, trade.InstallmentStatusPaid, today.AddDate(0, 0, -40))
	seedInstallment(t, db, sale, 3, trade.InstallmentStatusPending, today.AddDate(0, 1, 0))

	// same tenant, different client
	otherSale := seedSaleForClient(t, db, tenantID, uuid.New())
	seedInstallment(t, db, otherSale, 1, trade.InstallmentStatusPending, today.AddDate(0, 0, -10))

	overdue, err := repo.FindOverdueByClient(ctx, tenantID, clientID, today)
	require.NoError(t, err)
	require.Len(t, overdue, 1, "paid, future and foreign installments are excluded")
	assert.Equal(t, pastDue.ID, overdue[0].ID)
}

func TestGormInstallmentRepository_FindOverdueByClient_DueTodayIsNotOverdue(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormInstallmentRepository(db)

	tenantID := uuid.New()
	clientID := uuid.New()
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	sale := seedSaleForClient(t, db, tenantID, clientID)
	seedInstallment(t, db, sale, 1, trade.InstallmentStatusPending, today)

	overdue, err := repo.FindOverdueByClient(ctx, tenantID, clientID, today)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestGormInstallmentRepository_FindBySale(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormInstallmentRepository(db)

	tenantID := uuid.New()
	sale := seedSaleForClient(t, db, tenantID, uuid.New())
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	seedInstallment(t, db, sale, 2, trade.InstallmentStatusPending, due.AddDate(0, 1, 0))
	seedInstallment(t, db, sale, 1, trade.InstallmentStatusPending, due)
	seedInstallment(t, db, sale, 3, trade.InstallmentStatusPending, due.AddDate(0, 2, 0))

	installments, err := repo.FindBySale(ctx, tenantID, sale.ID)
	require.NoError(t, err)
	require.Len(t, installments, 3)
	for i, inst := range installments {
		assert.Equal(t, i+1, inst.InstallmentNumber, "ordered by installment number")
	}
}
