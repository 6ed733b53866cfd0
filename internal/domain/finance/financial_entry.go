package finance

import (
	"strings"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType represents the direction of a ledger line
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// IsValid checks if the type is a valid EntryType
func (t EntryType) IsValid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// EntryStatus represents the settlement status of a ledger line
type EntryStatus string

const (
	EntryStatusPaid    EntryStatus = "paid"
	EntryStatusPending EntryStatus = "pending"
	EntryStatusOverdue EntryStatus = "overdue"
)

// IsValid checks if the status is a valid EntryStatus
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPaid, EntryStatusPending, EntryStatusOverdue:
		return true
	}
	return false
}

// Reference types linking an entry back to its originating record
const (
	ReferenceTypeSale          = "sale"
	ReferenceTypeMoneyTransfer = "money_transfer"
)

// Ledger categories used by automatic entries
const (
	CategorySales     = "vendas"
	CategoryTransfers = "transferencias"
)

// FinancialEntry is a single income or expense line in the branch ledger,
// optionally traceable to the sale or money transfer that produced it.
type FinancialEntry struct {
	shared.TenantAggregateRoot
	BranchID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          EntryType       `gorm:"type:varchar(10);not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description   string          `gorm:"type:text;not null"`
	Category      string          `gorm:"type:varchar(50);not null"`
	Status        EntryStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	EntryDate     time.Time       `gorm:"not null;index"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid;index"`
	ReferenceType string          `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (FinancialEntry) TableName() string {
	return "financial_entries"
}

// NewFinancialEntry creates a new ledger line
func NewFinancialEntry(tenantID, branchID, createdBy uuid.UUID, entryType EntryType, amount valueobject.Money, description, category string, status EntryStatus) (*FinancialEntry, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be income or expense")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Entry amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Entry description is required")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Entry category is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_STATUS", "Unknown entry status")
	}

	return &FinancialEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		BranchID:            branchID,
		Type:                entryType,
		Amount:              amount.Amount(),
		Description:         description,
		Category:            category,
		Status:              status,
		EntryDate:           time.Now(),
	}, nil
}

// SetReference links the entry back to its originating record
func (e *FinancialEntry) SetReference(referenceID uuid.UUID, referenceType string) {
	e.ReferenceID = &referenceID
	e.ReferenceType = referenceType
	e.Touch()
}

// GetAmountMoney returns the entry amount as Money
func (e *FinancialEntry) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(e.Amount)
}
