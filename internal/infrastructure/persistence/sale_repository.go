package persistence

import (
	"context"
	"errors"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant finds a sale with its items by ID within a tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAllForTenant finds all sales for a tenant matching the filter
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Sale{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPagination(query, filter, saleSortFields)

	if err := query.Preload("Items").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// CountForTenant counts sales for a tenant matching the filter
func (r *GormSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Sale{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a sale and its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		}
	}
	return query
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
