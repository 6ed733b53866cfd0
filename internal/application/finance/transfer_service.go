package finance

import (
	"context"
	"fmt"

	appshared "github.com/gestor/backend/internal/application/shared"
	"github.com/gestor/backend/internal/domain/finance"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransferService manages inter-branch money transfers and posts the paired
// ledger entries when a transfer completes.
type TransferService struct {
	transferRepo finance.MoneyTransferRepository
	entryRepo    finance.FinancialEntryRepository
	cache        appshared.CacheInvalidator
	logger       *zap.Logger
}

// NewTransferService creates a new transfer service
func NewTransferService(
	transferRepo finance.MoneyTransferRepository,
	entryRepo finance.FinancialEntryRepository,
	cache appshared.CacheInvalidator,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		entryRepo:    entryRepo,
		cache:        cache,
		logger:       logger,
	}
}

// CreateTransfer registers a pending transfer between two branches
func (s *TransferService) CreateTransfer(ctx context.Context, identity Identity, req CreateTransferRequest) (*TransferResponse, error) {
	transfer, err := finance.NewMoneyTransfer(
		identity.TenantID,
		req.FromBranchID,
		req.ToBranchID,
		identity.UserID,
		valueobject.NewMoneyBRL(req.Amount),
		req.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.transferRepo.Save(ctx, transfer); err != nil {
		return nil, err
	}

	s.logger.Info("money transfer requested",
		zap.String("tenant_id", identity.TenantID.String()),
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("amount", transfer.Amount.StringFixed(2)))

	resp := ToTransferResponse(transfer)
	return &resp, nil
}

// GetTransfer returns a single transfer by ID
func (s *TransferService) GetTransfer(ctx context.Context, tenantID, id uuid.UUID) (*TransferResponse, error) {
	transfer, err := s.transferRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransferResponse(transfer)
	return &resp, nil
}

// ListTransfers returns a page of transfers for the tenant
func (s *TransferService) ListTransfers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]TransferResponse, error) {
	transfers, err := s.transferRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]TransferResponse, len(transfers))
	for i := range transfers {
		items[i] = ToTransferResponse(&transfers[i])
	}
	return items, nil
}

// UpdateTransferStatus moves a transfer through its lifecycle.
//
// The transition into completed posts exactly two ledger entries: an expense
// at the origin branch and an income at the destination branch, both in the
// transfers category and linked back to the transfer. Re-submitting the
// completed status is a no-op and never posts a second pair.
func (s *TransferService) UpdateTransferStatus(ctx context.Context, identity Identity, transferID uuid.UUID, req UpdateTransferStatusRequest) (*TransferResponse, error) {
	transfer, err := s.transferRepo.FindByIDForTenant(ctx, identity.TenantID, transferID)
	if err != nil {
		return nil, err
	}

	target := finance.TransferStatus(req.Status)
	justCompleted, err := transfer.TransitionTo(target)
	if err != nil {
		if err == shared.ErrInvalidState {
			return nil, shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Transfer cannot move from %s to %s", transfer.Status, target))
		}
		return nil, err
	}

	if err := s.transferRepo.Save(ctx, transfer); err != nil {
		return nil, err
	}

	if justCompleted {
		s.postTransferEntries(ctx, identity, transfer)
		s.invalidateCaches(ctx, identity.TenantID)
	}

	resp := ToTransferResponse(transfer)
	return &resp, nil
}

// postTransferEntries writes the expense/income pair for a completed
// transfer. Entry failures are logged, not propagated: the transfer itself
// is already completed and must stay that way.
func (s *TransferService) postTransferEntries(ctx context.Context, identity Identity, transfer *finance.MoneyTransfer) {
	amount := transfer.GetAmountMoney()

	pair := []struct {
		entryType   finance.EntryType
		branchID    uuid.UUID
		description string
	}{
		{finance.EntryTypeExpense, transfer.FromBranchID, fmt.Sprintf("Transferencia enviada %s", transfer.ID)},
		{finance.EntryTypeIncome, transfer.ToBranchID, fmt.Sprintf("Transferencia recebida %s", transfer.ID)},
	}

	for _, p := range pair {
		entry, err := finance.NewFinancialEntry(
			identity.TenantID,
			p.branchID,
			identity.UserID,
			p.entryType,
			amount,
			p.description,
			finance.CategoryTransfers,
			finance.EntryStatusPaid,
		)
		if err != nil {
			s.logger.Error("building transfer ledger entry failed",
				zap.String("transfer_id", transfer.ID.String()),
				zap.String("type", p.entryType.String()),
				zap.Error(err))
			continue
		}
		entry.SetReference(transfer.ID, finance.ReferenceTypeMoneyTransfer)
		if err := s.entryRepo.Save(ctx, entry); err != nil {
			s.logger.Error("posting transfer ledger entry failed",
				zap.String("transfer_id", transfer.ID.String()),
				zap.String("type", p.entryType.String()),
				zap.Error(err))
		}
	}
}

func (s *TransferService) invalidateCaches(ctx context.Context, tenantID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("financial:%s", tenantID)); err != nil {
		s.logger.Warn("cache invalidation after transfer completion failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}
}
