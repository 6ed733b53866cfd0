package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements trade.InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// FindByIDForTenant finds an installment by ID within a tenant
func (r *GormInstallmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Installment, error) {
	var installment trade.Installment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&installment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &installment, nil
}

// FindBySale returns the installments of a sale ordered by number
func (r *GormInstallmentRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]trade.Installment, error) {
	var installments []trade.Installment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_id = ?", tenantID, saleID).
		Order("installment_number ASC").
		Find(&installments).Error
	if err != nil {
		return nil, err
	}
	return installments, nil
}

// FindOverdueByClient returns the pending installments of all sales of a
// client with a due date strictly before the given date. Installments reach
// a client only through their sales, hence the join.
func (r *GormInstallmentRepository) FindOverdueByClient(ctx context.Context, tenantID, clientID uuid.UUID, before time.Time) ([]trade.Installment, error) {
	day := time.Date(before.Year(), before.Month(), before.Day(), 0, 0, 0, 0, time.UTC)

	var installments []trade.Installment
	err := r.db.WithContext(ctx).
		Joins("JOIN sales ON sales.id = installments.sale_id AND sales.tenant_id = installments.tenant_id").
		Where("installments.tenant_id = ?", tenantID).
		Where("sales.client_id = ?", clientID).
		Where("installments.status = ?", trade.InstallmentStatusPending).
		Where("installments.due_date < ?", day).
		Order("installments.due_date ASC").
		Find(&installments).Error
	if err != nil {
		return nil, err
	}
	return installments, nil
}

// Save persists an installment
func (r *GormInstallmentRepository) Save(ctx context.Context, installment *trade.Installment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}

var _ trade.InstallmentRepository = (*GormInstallmentRepository)(nil)
