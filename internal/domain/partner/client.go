package partner

import (
	"strings"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientType represents the legal type of a client
type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeCompany    ClientType = "company"
)

// IsValid checks if the type is a valid ClientType
func (t ClientType) IsValid() bool {
	switch t {
	case ClientTypeIndividual, ClientTypeCompany:
		return true
	}
	return false
}

// String returns the string representation of ClientType
func (t ClientType) String() string {
	return string(t)
}

// Client represents a customer of a branch.
// The debt summary fields are a denormalized cache of a pure function over
// the client's pending installments; they are mutated only through
// ApplyDebtSummary and must never be edited directly.
type Client struct {
	shared.TenantAggregateRoot
	BranchID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name     string     `gorm:"type:varchar(200);not null"`
	Email    string     `gorm:"type:varchar(200)"`
	Phone    string     `gorm:"type:varchar(40)"`
	Document string     `gorm:"type:varchar(40)"`
	Address  string     `gorm:"type:text"`
	Type     ClientType `gorm:"type:varchar(20);not null;default:'individual'"`

	DebtStatus               DebtStatus      `gorm:"type:varchar(20);not null;default:'regular';index"`
	OverdueAmount            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OverdueInstallmentsCount int             `gorm:"not null;default:0"`
	FirstOverdueDate         *time.Time      `gorm:"type:date"`
	DebtStatusUpdatedAt      *time.Time
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(tenantID, branchID uuid.UUID, name string, clientType ClientType) (*Client, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name must have at least 2 characters")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if clientType == "" {
		clientType = ClientTypeIndividual
	}
	if !clientType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CLIENT_TYPE", "Client type must be individual or company")
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BranchID:            branchID,
		Name:                name,
		Type:                clientType,
		DebtStatus:          DebtStatusRegular,
		OverdueAmount:       decimal.Zero,
	}, nil
}

// SetContact sets the contact information
func (c *Client) SetContact(email, phone, document, address string) {
	c.Email = email
	c.Phone = phone
	c.Document = document
	c.Address = address
	c.Touch()
}

// ApplyDebtSummary overwrites the denormalized debt fields with a freshly
// computed summary. No history of prior debt states is retained.
func (c *Client) ApplyDebtSummary(summary DebtSummary) {
	c.DebtStatus = summary.Status
	c.OverdueAmount = summary.OverdueAmount
	c.OverdueInstallmentsCount = summary.OverdueInstallmentsCount
	c.FirstOverdueDate = summary.FirstOverdueDate
	now := summary.ComputedAt
	c.DebtStatusUpdatedAt = &now
	c.Touch()
}

// HasDebt returns true if the client is not in regular standing
func (c *Client) HasDebt() bool {
	return c.DebtStatus != DebtStatusRegular
}
