package persistence

import (
	"context"
	"errors"

	"github.com/gestor/backend/internal/domain/finance"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMoneyTransferRepository implements finance.MoneyTransferRepository using GORM
type GormMoneyTransferRepository struct {
	db *gorm.DB
}

// NewGormMoneyTransferRepository creates a new GormMoneyTransferRepository
func NewGormMoneyTransferRepository(db *gorm.DB) *GormMoneyTransferRepository {
	return &GormMoneyTransferRepository{db: db}
}

// FindByIDForTenant finds a transfer by ID within a tenant
func (r *GormMoneyTransferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.MoneyTransfer, error) {
	var transfer finance.MoneyTransfer
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&transfer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// FindAllForTenant finds all transfers for a tenant matching the filter
func (r *GormMoneyTransferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.MoneyTransfer, error) {
	var transfers []finance.MoneyTransfer
	query := r.db.WithContext(ctx).Model(&finance.MoneyTransfer{}).Where("tenant_id = ?", tenantID)
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "from_branch_id":
			query = query.Where("from_branch_id = ?", value)
		case "to_branch_id":
			query = query.Where("to_branch_id = ?", value)
		}
	}
	query = applyPagination(query, filter, transferSortFields)

	if err := query.Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Save persists a transfer
func (r *GormMoneyTransferRepository) Save(ctx context.Context, transfer *finance.MoneyTransfer) error {
	return r.db.WithContext(ctx).Save(transfer).Error
}

var _ finance.MoneyTransferRepository = (*GormMoneyTransferRepository)(nil)
