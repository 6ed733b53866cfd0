package finance

import (
	"context"
	"time"

	"github.com/gestor/backend/internal/domain/finance"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FinanceService manages the financial ledger
type FinanceService struct {
	entryRepo finance.FinancialEntryRepository
	logger    *zap.Logger
}

// NewFinanceService creates a new finance service
func NewFinanceService(entryRepo finance.FinancialEntryRepository, logger *zap.Logger) *FinanceService {
	return &FinanceService{entryRepo: entryRepo, logger: logger}
}

// CreateEntry posts a manual ledger entry
func (s *FinanceService) CreateEntry(ctx context.Context, identity Identity, req CreateEntryRequest) (*EntryResponse, error) {
	status := finance.EntryStatus(req.Status)
	if req.Status == "" {
		status = finance.EntryStatusPending
	}

	entry, err := finance.NewFinancialEntry(
		identity.TenantID,
		req.BranchID,
		identity.UserID,
		finance.EntryType(req.Type),
		valueobject.NewMoneyBRL(req.Amount),
		req.Description,
		req.Category,
		status,
	)
	if err != nil {
		return nil, err
	}

	if req.EntryDate != "" {
		entryDate, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION", "entry_date: expected YYYY-MM-DD")
		}
		entry.EntryDate = entryDate
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("ledger entry posted",
		zap.String("tenant_id", identity.TenantID.String()),
		zap.String("entry_id", entry.ID.String()),
		zap.String("type", entry.Type.String()),
		zap.String("category", entry.Category))

	resp := ToEntryResponse(entry)
	return &resp, nil
}

// GetEntry returns a single ledger entry by ID
func (s *FinanceService) GetEntry(ctx context.Context, tenantID, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEntryResponse(entry)
	return &resp, nil
}

// ListEntries returns a page of ledger entries for the tenant
func (s *FinanceService) ListEntries(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[EntryResponse], error) {
	entries, err := s.entryRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.entryRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]EntryResponse, len(entries))
	for i := range entries {
		items[i] = ToEntryResponse(&entries[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListEntriesByReference returns the ledger entries produced by a sale or
// money transfer
func (s *FinanceService) ListEntriesByReference(ctx context.Context, tenantID, referenceID uuid.UUID, referenceType string) ([]EntryResponse, error) {
	entries, err := s.entryRepo.FindByReference(ctx, tenantID, referenceID, referenceType)
	if err != nil {
		return nil, err
	}
	items := make([]EntryResponse, len(entries))
	for i := range entries {
		items[i] = ToEntryResponse(&entries[i])
	}
	return items, nil
}
