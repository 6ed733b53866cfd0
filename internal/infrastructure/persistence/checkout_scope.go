package persistence

import (
	"context"

	apptrade "github.com/gestor/backend/internal/application/trade"
	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormCheckoutScope implements the checkout transaction scope using GORM
// transactions, so the sale, its installments and the stock decrements land
// or roll back together.
type GormCheckoutScope struct {
	db *gorm.DB
}

// NewGormCheckoutScope creates a new GormCheckoutScope
func NewGormCheckoutScope(db *gorm.DB) *GormCheckoutScope {
	return &GormCheckoutScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCheckoutScope) Execute(ctx context.Context, fn func(repos apptrade.CheckoutRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

// gormCheckoutRepositories binds the checkout repositories to one transaction
type gormCheckoutRepositories struct {
	tx *gorm.DB
}

func (r *gormCheckoutRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormCheckoutRepositories) InstallmentRepo() trade.InstallmentRepository {
	return NewGormInstallmentRepository(r.tx)
}

func (r *gormCheckoutRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

var _ apptrade.CheckoutScope = (*GormCheckoutScope)(nil)
var _ apptrade.CheckoutRepositories = (*gormCheckoutRepositories)(nil)
