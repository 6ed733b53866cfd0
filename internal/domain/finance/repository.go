package finance

import (
	"context"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FinancialEntryRepository defines the persistence interface for ledger lines
type FinancialEntryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FinancialEntry, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FinancialEntry, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindByReference(ctx context.Context, tenantID, referenceID uuid.UUID, referenceType string) ([]FinancialEntry, error)
	Save(ctx context.Context, entry *FinancialEntry) error
}

// MoneyTransferRepository defines the persistence interface for transfers
type MoneyTransferRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*MoneyTransfer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]MoneyTransfer, error)
	Save(ctx context.Context, transfer *MoneyTransfer) error
}
