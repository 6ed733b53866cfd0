package trade

import (
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the payment status of an installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
)

// IsValid checks if the status is a valid InstallmentStatus
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentStatusPending, InstallmentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InstallmentStatus
func (s InstallmentStatus) String() string {
	return string(s)
}

// Installment is one scheduled payment of a sale's total. Installments for a
// sale are numbered contiguously from 1 to TotalInstallments and are created
// together with the sale. The only mutation is the one-way pending to paid
// transition.
type Installment struct {
	shared.TenantAggregateRoot
	BranchID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	SaleID             uuid.UUID         `gorm:"type:uuid;not null;index"`
	InstallmentNumber  int               `gorm:"not null"`
	TotalInstallments  int               `gorm:"not null"`
	Amount             decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	DueDate            time.Time         `gorm:"type:date;not null;index"`
	Status             InstallmentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidAt             *time.Time
}

// TableName returns the table name for GORM
func (Installment) TableName() string {
	return "installments"
}

// NewInstallment creates a new pending installment for a sale
func NewInstallment(tenantID, branchID, createdBy, saleID uuid.UUID, number, total int, amount decimal.Decimal, dueDate time.Time) (*Installment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if number < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_NUMBER", "Installment number must be at least 1")
	}
	if total < number {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_NUMBER", "Installment number cannot exceed total installments")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Installment amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Installment due date is required")
	}

	return &Installment{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		BranchID:            branchID,
		SaleID:              saleID,
		InstallmentNumber:   number,
		TotalInstallments:   total,
		Amount:              amount,
		DueDate:             dueDate,
		Status:              InstallmentStatusPending,
	}, nil
}

// MarkPaid transitions the installment from pending to paid. The transition
// is one-way; paying an already paid installment is an invalid state change.
func (i *Installment) MarkPaid() error {
	if i.Status == InstallmentStatusPaid {
		return shared.ErrInvalidState
	}
	now := time.Now()
	i.Status = InstallmentStatusPaid
	i.PaidAt = &now
	i.Touch()
	return nil
}

// IsOverdue returns true if the installment is pending and its due date is
// before the given calendar date
func (i *Installment) IsOverdue(today time.Time) bool {
	if i.Status != InstallmentStatusPending {
		return false
	}
	due := time.Date(i.DueDate.Year(), i.DueDate.Month(), i.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	ref := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(ref)
}
