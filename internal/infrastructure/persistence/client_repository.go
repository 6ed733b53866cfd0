package persistence

import (
	"context"
	"errors"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByIDForTenant finds a client by ID within a tenant
func (r *GormClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	var client partner.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAllForTenant finds all clients for a tenant matching the filter
func (r *GormClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	var clients []partner.Client
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Client{}).Where("tenant_id = ?", tenantID), filter)
	query = applyPagination(query, filter, clientSortFields)

	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// CountForTenant counts clients for a tenant matching the filter
func (r *GormClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Client{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindIDsWithSales returns the IDs of clients that have at least one sale
func (r *GormClientRepository) FindIDsWithSales(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&partner.Client{}).
		Where("clients.tenant_id = ?", tenantID).
		Where("EXISTS (SELECT 1 FROM sales WHERE sales.client_id = clients.id AND sales.tenant_id = clients.tenant_id)").
		Pluck("clients.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindOverdue returns clients whose debt status is not regular
func (r *GormClientRepository) FindOverdue(ctx context.Context, tenantID uuid.UUID) ([]partner.Client, error) {
	var clients []partner.Client
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND debt_status <> ?", tenantID, partner.DebtStatusRegular).
		Order("first_overdue_date ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// Save persists a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// UpdateDebtSummary persists only the denormalized debt fields in one update
func (r *GormClientRepository) UpdateDebtSummary(ctx context.Context, client *partner.Client) error {
	return r.db.WithContext(ctx).
		Model(&partner.Client{}).
		Where("tenant_id = ? AND id = ?", client.TenantID, client.ID).
		Updates(map[string]any{
			"debt_status":                client.DebtStatus,
			"overdue_amount":             client.OverdueAmount,
			"overdue_installments_count": client.OverdueInstallmentsCount,
			"first_overdue_date":         client.FirstOverdueDate,
			"debt_status_updated_at":     client.DebtStatusUpdatedAt,
			"updated_at":                 client.UpdatedAt,
		}).Error
}

func (r *GormClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR document LIKE ?", pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "debt_status":
			query = query.Where("debt_status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}
	return query
}

// DistinctTenantIDs lists every tenant that has clients. Not part of the
// tenant-scoped repository interface; the debt reconcile scheduler is the
// only caller.
func (r *GormClientRepository) DistinctTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&partner.Client{}).
		Distinct("tenant_id").
		Pluck("tenant_id", &ids).Error
	if err != nil {
		return nil, shared.ErrDependency
	}
	return ids, nil
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)
