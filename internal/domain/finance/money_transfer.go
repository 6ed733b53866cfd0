package finance

import (
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferStatus represents the status of an inter-branch money transfer
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusApproved  TransferStatus = "approved"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusRejected  TransferStatus = "rejected"
)

// IsValid checks if the status is a valid TransferStatus
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusApproved, TransferStatusCompleted, TransferStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of TransferStatus
func (s TransferStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s TransferStatus) CanTransitionTo(target TransferStatus) bool {
	switch s {
	case TransferStatusPending:
		return target == TransferStatusApproved || target == TransferStatusRejected
	case TransferStatusApproved:
		return target == TransferStatusCompleted
	case TransferStatusCompleted, TransferStatusRejected:
		return false // terminal states
	}
	return false
}

// MoneyTransfer moves funds between two branches of the same company.
// Completing a transfer is the only transition with ledger side effects:
// one expense entry at the origin branch and one income entry at the
// destination, posted exactly once.
type MoneyTransfer struct {
	shared.TenantAggregateRoot
	FromBranchID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ToBranchID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description  string          `gorm:"type:text"`
	Status       TransferStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	TransferDate time.Time       `gorm:"not null"`
	CompletedAt  *time.Time
}

// TableName returns the table name for GORM
func (MoneyTransfer) TableName() string {
	return "money_transfers"
}

// NewMoneyTransfer creates a pending transfer between two branches
func NewMoneyTransfer(tenantID, fromBranchID, toBranchID, createdBy uuid.UUID, amount valueobject.Money, description string) (*MoneyTransfer, error) {
	if fromBranchID == uuid.Nil || toBranchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Both branches are required")
	}
	if fromBranchID == toBranchID {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Origin and destination branches must differ")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transfer amount must be positive")
	}

	return &MoneyTransfer{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		FromBranchID:        fromBranchID,
		ToBranchID:          toBranchID,
		Amount:              amount.Amount(),
		Description:         description,
		Status:              TransferStatusPending,
		TransferDate:        time.Now(),
	}, nil
}

// TransitionTo moves the transfer to the target status, enforcing the state
// machine. Returns true when this call is the transition into completed,
// which is the caller's signal to post the ledger entries. A transfer
// already in completed reports false so the side effect never runs twice.
func (t *MoneyTransfer) TransitionTo(target TransferStatus) (justCompleted bool, err error) {
	if !target.IsValid() {
		return false, shared.NewDomainError("INVALID_TRANSFER_STATUS", "Unknown transfer status")
	}
	if target == t.Status {
		return false, nil
	}
	if !t.Status.CanTransitionTo(target) {
		return false, shared.ErrInvalidState
	}

	t.Status = target
	if target == TransferStatusCompleted {
		now := time.Now()
		t.CompletedAt = &now
		justCompleted = true
	}
	t.Touch()
	return justCompleted, nil
}

// GetAmountMoney returns the transfer amount as Money
func (t *MoneyTransfer) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(t.Amount)
}
