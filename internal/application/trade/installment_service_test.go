package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	partnerapp "github.com/gestor/backend/internal/application/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDebtRecomputer struct{ mock.Mock }

func (m *mockDebtRecomputer) RecomputeClientDebt(ctx context.Context, tenantID, clientID uuid.UUID) (*partnerapp.DebtStatusResponse, error) {
	args := m.Called(ctx, tenantID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.DebtStatusResponse), args.Error(1)
}

func pendingInstallmentFixture(t *testing.T, tenantID uuid.UUID, saleID uuid.UUID) *trade.Installment {
	t.Helper()
	inst, err := trade.NewInstallment(tenantID, uuid.New(), uuid.New(), saleID, 1, 3,
		decimal.NewFromInt(100), time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return inst
}

func saleWithClientFixture(t *testing.T, tenantID uuid.UUID, clientID uuid.UUID) *trade.Sale {
	t.Helper()
	sale, err := trade.NewSale(tenantID, uuid.New(), uuid.New(), trade.PaymentMethodBoleto, 3)
	require.NoError(t, err)
	sale.SetClient(clientID, "Maria Silva")
	_, err = sale.AddItem(uuid.New(), "Tinta", 3, valueobject.NewMoneyBRL(decimal.NewFromInt(100)), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, sale.SetAmounts(decimal.Zero, decimal.Zero, decimal.NewFromInt(300)))
	return sale
}

func TestInstallmentService_MarkInstallmentPaid(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	clientID := uuid.New()

	t.Run("pays a pending installment and refreshes client debt", func(t *testing.T) {
		sale := saleWithClientFixture(t, tenantID, clientID)
		inst := pendingInstallmentFixture(t, tenantID, sale.ID)

		installments := new(mockInstallmentRepo)
		sales := new(mockSaleRepo)
		debt := new(mockDebtRecomputer)

		installments.On("FindByIDForTenant", ctx, tenantID, inst.ID).Return(inst, nil)
		installments.On("Save", ctx, mock.MatchedBy(func(i *trade.Installment) bool {
			return i.Status == trade.InstallmentStatusPaid && i.PaidAt != nil
		})).Return(nil)
		sales.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		debt.On("RecomputeClientDebt", ctx, tenantID, clientID).
			Return(&partnerapp.DebtStatusResponse{DebtStatus: "regular"}, nil)

		svc := NewInstallmentService(installments, sales, debt, zap.NewNop())
		resp, err := svc.MarkInstallmentPaid(ctx, tenantID, inst.ID)

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		assert.NotNil(t, resp.PaidAt)
		installments.AssertExpectations(t)
		debt.AssertExpectations(t)
	})

	t.Run("paying twice is an invalid state change", func(t *testing.T) {
		sale := saleWithClientFixture(t, tenantID, clientID)
		inst := pendingInstallmentFixture(t, tenantID, sale.ID)
		require.NoError(t, inst.MarkPaid())

		installments := new(mockInstallmentRepo)
		sales := new(mockSaleRepo)
		debt := new(mockDebtRecomputer)

		installments.On("FindByIDForTenant", ctx, tenantID, inst.ID).Return(inst, nil)

		svc := NewInstallmentService(installments, sales, debt, zap.NewNop())
		_, err := svc.MarkInstallmentPaid(ctx, tenantID, inst.ID)

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		installments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		debt.AssertNotCalled(t, "RecomputeClientDebt", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown installment", func(t *testing.T) {
		installments := new(mockInstallmentRepo)
		sales := new(mockSaleRepo)

		missingID := uuid.New()
		installments.On("FindByIDForTenant", ctx, tenantID, missingID).Return(nil, shared.ErrNotFound)

		svc := NewInstallmentService(installments, sales, new(mockDebtRecomputer), zap.NewNop())
		_, err := svc.MarkInstallmentPaid(ctx, tenantID, missingID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("payment survives a failed debt refresh", func(t *testing.T) {
		sale := saleWithClientFixture(t, tenantID, clientID)
		inst := pendingInstallmentFixture(t, tenantID, sale.ID)

		installments := new(mockInstallmentRepo)
		sales := new(mockSaleRepo)
		debt := new(mockDebtRecomputer)

		installments.On("FindByIDForTenant", ctx, tenantID, inst.ID).Return(inst, nil)
		installments.On("Save", ctx, mock.Anything).Return(nil)
		sales.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)
		debt.On("RecomputeClientDebt", ctx, tenantID, clientID).
			Return(nil, errors.New("db unavailable"))

		svc := NewInstallmentService(installments, sales, debt, zap.NewNop())
		resp, err := svc.MarkInstallmentPaid(ctx, tenantID, inst.ID)

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
	})

	t.Run("anonymous sale skips the debt refresh", func(t *testing.T) {
		sale, err := trade.NewSale(tenantID, uuid.New(), uuid.New(), trade.PaymentMethodDinheiro, 1)
		require.NoError(t, err)
		inst := pendingInstallmentFixture(t, tenantID, sale.ID)

		installments := new(mockInstallmentRepo)
		sales := new(mockSaleRepo)
		debt := new(mockDebtRecomputer)

		installments.On("FindByIDForTenant", ctx, tenantID, inst.ID).Return(inst, nil)
		installments.On("Save", ctx, mock.Anything).Return(nil)
		sales.On("FindByIDForTenant", ctx, tenantID, sale.ID).Return(sale, nil)

		svc := NewInstallmentService(installments, sales, debt, zap.NewNop())
		_, err = svc.MarkInstallmentPaid(ctx, tenantID, inst.ID)

		require.NoError(t, err)
		debt.AssertNotCalled(t, "RecomputeClientDebt", mock.Anything, mock.Anything, mock.Anything)
	})
}
