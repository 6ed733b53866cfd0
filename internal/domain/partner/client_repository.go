package partner

import (
	"context"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the persistence interface for the Client aggregate.
// Every method takes an explicit tenant ID so a query can never be issued
// without the tenant filter.
type ClientRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Client, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Client, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// FindIDsWithSales returns the IDs of clients of the tenant that have at
	// least one sale. Used by the batch debt reconciliation job.
	FindIDsWithSales(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error)

	// FindOverdue returns clients whose debt status is not regular.
	FindOverdue(ctx context.Context, tenantID uuid.UUID) ([]Client, error)

	Save(ctx context.Context, client *Client) error

	// UpdateDebtSummary persists only the denormalized debt fields of the
	// client in a single update.
	UpdateDebtSummary(ctx context.Context, client *Client) error
}
