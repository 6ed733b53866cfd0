package partner

import (
	"context"
	"time"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DebtService recomputes and persists the denormalized debt status of
// clients from their overdue installments.
type DebtService struct {
	clientRepo      partner.ClientRepository
	installmentRepo trade.InstallmentRepository
	now             func() time.Time
	logger          *zap.Logger
}

// NewDebtService creates a new debt service
func NewDebtService(clientRepo partner.ClientRepository, installmentRepo trade.InstallmentRepository, logger *zap.Logger) *DebtService {
	return &DebtService{
		clientRepo:      clientRepo,
		installmentRepo: installmentRepo,
		now:             time.Now,
		logger:          logger,
	}
}

// WithClock overrides the service clock. Used in tests.
func (s *DebtService) WithClock(now func() time.Time) *DebtService {
	s.now = now
	return s
}

// RecomputeClientDebt reclassifies a single client from the pending
// installments of their sales that are past due today, and overwrites the
// client's denormalized debt fields. The recomputed value always wins;
// previous state is never merged in.
func (s *DebtService) RecomputeClientDebt(ctx context.Context, tenantID, clientID uuid.UUID) (*DebtStatusResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	installments, err := s.installmentRepo.FindOverdueByClient(ctx, tenantID, clientID, today)
	if err != nil {
		return nil, err
	}

	overdue := make([]partner.OverdueInstallment, len(installments))
	for i, inst := range installments {
		overdue[i] = partner.OverdueInstallment{
			Amount:  inst.Amount,
			DueDate: inst.DueDate,
		}
	}

	summary := partner.BuildDebtSummary(overdue, today)
	client.ApplyDebtSummary(summary)

	if err := s.clientRepo.UpdateDebtSummary(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Debug("client debt status recomputed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("client_id", clientID.String()),
		zap.String("status", summary.Status.String()),
		zap.Int("overdue_installments", summary.OverdueInstallmentsCount))

	resp := &DebtStatusResponse{
		ClientID:                 clientID,
		DebtStatus:               summary.Status.String(),
		OverdueAmount:            summary.OverdueAmount,
		OverdueInstallmentsCount: summary.OverdueInstallmentsCount,
		ComputedAt:               summary.ComputedAt,
	}
	if summary.FirstOverdueDate != nil {
		formatted := summary.FirstOverdueDate.Format("2006-01-02")
		resp.FirstOverdueDate = &formatted
	}
	return resp, nil
}

// RecomputeAllClients reclassifies every client of the tenant that has at
// least one sale. A failure on one client is logged and counted but does not
// stop the run.
func (s *DebtService) RecomputeAllClients(ctx context.Context, tenantID uuid.UUID) (*BatchResult, error) {
	ids, err := s.clientRepo.FindIDsWithSales(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, id := range ids {
		result.Processed++
		resp, err := s.RecomputeClientDebt(ctx, tenantID, id)
		if err != nil {
			result.Failed++
			s.logger.Warn("debt recomputation failed for client",
				zap.String("tenant_id", tenantID.String()),
				zap.String("client_id", id.String()),
				zap.Error(err))
			continue
		}
		result.Updated++
		switch resp.DebtStatus {
		case partner.DebtStatusDebtor.String():
			result.Debtor++
		case partner.DebtStatusDefaulter.String():
			result.Defaulter++
		default:
			result.Regular++
		}
	}

	s.logger.Info("debt reconciliation finished",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("processed", result.Processed),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
		zap.Int("regular", result.Regular),
		zap.Int("debtor", result.Debtor),
		zap.Int("defaulter", result.Defaulter))
	return result, nil
}
