package catalog

import (
	"context"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence interface for the Product aggregate
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error

	// DecrementStock atomically decreases the stock of a product, guarded by
	// a stock >= quantity condition in the same statement. Returns
	// shared.ErrInsufficientStock when the guard fails and shared.ErrNotFound
	// when the product does not exist for the tenant.
	DecrementStock(ctx context.Context, tenantID, productID uuid.UUID, quantity int) error
}
