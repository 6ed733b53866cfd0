package trade

import (
	"context"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository defines the persistence interface for the Sale aggregate
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, sale *Sale) error
}

// InstallmentRepository defines the persistence interface for installments
type InstallmentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Installment, error)
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]Installment, error)

	// FindOverdueByClient returns the pending installments of all sales of a
	// client whose due date is strictly before the given calendar date.
	FindOverdueByClient(ctx context.Context, tenantID, clientID uuid.UUID, before time.Time) ([]Installment, error)

	Save(ctx context.Context, installment *Installment) error
}
