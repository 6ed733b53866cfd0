package trade

import (
	"context"

	partnerapp "github.com/gestor/backend/internal/application/partner"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DebtRecomputer refreshes a client's debt classification after a payment
// event. Satisfied by the partner debt service.
type DebtRecomputer interface {
	RecomputeClientDebt(ctx context.Context, tenantID, clientID uuid.UUID) (*partnerapp.DebtStatusResponse, error)
}

// InstallmentService handles installment status changes
type InstallmentService struct {
	installmentRepo trade.InstallmentRepository
	saleRepo        trade.SaleRepository
	debt            DebtRecomputer
	logger          *zap.Logger
}

// NewInstallmentService creates a new installment service
func NewInstallmentService(installmentRepo trade.InstallmentRepository, saleRepo trade.SaleRepository, debt DebtRecomputer, logger *zap.Logger) *InstallmentService {
	return &InstallmentService{
		installmentRepo: installmentRepo,
		saleRepo:        saleRepo,
		debt:            debt,
		logger:          logger,
	}
}

// MarkInstallmentPaid settles a pending installment. Payment is one-way:
// paying an already paid installment fails with an invalid state error.
// After the write, the debt classification of the sale's client is
// refreshed, since the installment that just got paid may have been the one
// keeping the client overdue. The refresh is secondary: its failure is
// logged and the payment still stands.
func (s *InstallmentService) MarkInstallmentPaid(ctx context.Context, tenantID, installmentID uuid.UUID) (*InstallmentResponse, error) {
	installment, err := s.installmentRepo.FindByIDForTenant(ctx, tenantID, installmentID)
	if err != nil {
		return nil, err
	}

	if err := installment.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.installmentRepo.Save(ctx, installment); err != nil {
		return nil, err
	}

	s.recomputeDebtForSale(ctx, tenantID, installment.SaleID)

	resp := ToInstallmentResponse(installment)
	return &resp, nil
}

func (s *InstallmentService) recomputeDebtForSale(ctx context.Context, tenantID, saleID uuid.UUID) {
	if s.debt == nil {
		return
	}
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		s.logger.Warn("debt recompute skipped: sale lookup failed",
			zap.String("sale_id", saleID.String()),
			zap.Error(err))
		return
	}
	if sale.ClientID == nil {
		return
	}
	if _, err := s.debt.RecomputeClientDebt(ctx, tenantID, *sale.ClientID); err != nil {
		s.logger.Warn("debt recompute after payment failed",
			zap.String("client_id", sale.ClientID.String()),
			zap.Error(err))
	}
}
