package trade

import (
	"context"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/trade"
)

// CheckoutRepositories exposes the repositories taking part in a checkout
// transaction. Implementations bind them to the same database transaction.
type CheckoutRepositories interface {
	SaleRepo() trade.SaleRepository
	InstallmentRepo() trade.InstallmentRepository
	ProductRepo() catalog.ProductRepository
}

// CheckoutScope runs a function inside a single transaction. If the function
// returns an error the whole transaction is rolled back.
type CheckoutScope interface {
	Execute(ctx context.Context, fn func(repos CheckoutRepositories) error) error
}

// noOpCheckoutScope executes the function against the ambient repositories
// without transactional guarantees. Used in tests.
type noOpCheckoutScope struct {
	repos CheckoutRepositories
}

// NewNoOpCheckoutScope creates a pass-through scope over the given repositories.
func NewNoOpCheckoutScope(repos CheckoutRepositories) CheckoutScope {
	return &noOpCheckoutScope{repos: repos}
}

func (s *noOpCheckoutScope) Execute(_ context.Context, fn func(repos CheckoutRepositories) error) error {
	return fn(s.repos)
}
