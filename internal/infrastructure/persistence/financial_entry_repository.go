package persistence

import (
	"context"
	"errors"

	"github.com/gestor/backend/internal/domain/finance"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFinancialEntryRepository implements finance.FinancialEntryRepository using GORM
type GormFinancialEntryRepository struct {
	db *gorm.DB
}

// NewGormFinancialEntryRepository creates a new GormFinancialEntryRepository
func NewGormFinancialEntryRepository(db *gorm.DB) *GormFinancialEntryRepository {
	return &GormFinancialEntryRepository{db: db}
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormFinancialEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.FinancialEntry, error) {
	var entry finance.FinancialEntry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAllForTenant finds all entries for a tenant matching the filter
func (r *GormFinancialEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.FinancialEntry, error) {
	var entries []finance.FinancialEntry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.FinancialEntry{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPagination(query, filter, entrySortFields)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountForTenant counts entries for a tenant matching the filter
func (r *GormFinancialEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.FinancialEntry{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByReference returns the entries linked to a sale or money transfer
func (r *GormFinancialEntryRepository) FindByReference(ctx context.Context, tenantID, referenceID uuid.UUID, referenceType string) ([]finance.FinancialEntry, error) {
	var entries []finance.FinancialEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reference_id = ? AND reference_type = ?", tenantID, referenceID, referenceType).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Save persists an entry
func (r *GormFinancialEntryRepository) Save(ctx context.Context, entry *finance.FinancialEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *GormFinancialEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("description LIKE ?", pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		}
	}
	return query
}

var _ finance.FinancialEntryRepository = (*GormFinancialEntryRepository)(nil)
