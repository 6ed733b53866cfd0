package partner

import (
	"time"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateClientRequest is the input for registering a client
type CreateClientRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Name     string    `json:"name" binding:"required,min=2,max=200"`
	Email    string    `json:"email" binding:"omitempty,email"`
	Phone    string    `json:"phone"`
	Document string    `json:"document"`
	Address  string    `json:"address"`
	Type     string    `json:"type"`
}

// UpdateClientRequest is the input for updating a client's contact data
type UpdateClientRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
	Address  string `json:"address"`
}

// ClientResponse is the API representation of a client
type ClientResponse struct {
	ID                       uuid.UUID       `json:"id"`
	BranchID                 uuid.UUID       `json:"branch_id"`
	Name                     string          `json:"name"`
	Email                    string          `json:"email,omitempty"`
	Phone                    string          `json:"phone,omitempty"`
	Document                 string          `json:"document,omitempty"`
	Address                  string          `json:"address,omitempty"`
	Type                     string          `json:"type"`
	DebtStatus               string          `json:"debt_status"`
	OverdueAmount            decimal.Decimal `json:"overdue_amount"`
	OverdueInstallmentsCount int             `json:"overdue_installments_count"`
	FirstOverdueDate         *string         `json:"first_overdue_date,omitempty"`
	DebtStatusUpdatedAt      *time.Time      `json:"debt_status_updated_at,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
}

// ToClientResponse converts a domain client to its API representation
func ToClientResponse(client *partner.Client) ClientResponse {
	resp := ClientResponse{
		ID:                       client.ID,
		BranchID:                 client.BranchID,
		Name:                     client.Name,
		Email:                    client.Email,
		Phone:                    client.Phone,
		Document:                 client.Document,
		Address:                  client.Address,
		Type:                     client.Type.String(),
		DebtStatus:               client.DebtStatus.String(),
		OverdueAmount:            client.OverdueAmount,
		OverdueInstallmentsCount: client.OverdueInstallmentsCount,
		DebtStatusUpdatedAt:      client.DebtStatusUpdatedAt,
		CreatedAt:                client.CreatedAt,
	}
	if client.FirstOverdueDate != nil {
		formatted := client.FirstOverdueDate.Format("2006-01-02")
		resp.FirstOverdueDate = &formatted
	}
	return resp
}

// DebtStatusResponse is the result of a debt recomputation for one client
type DebtStatusResponse struct {
	ClientID                 uuid.UUID       `json:"client_id"`
	DebtStatus               string          `json:"debt_status"`
	OverdueAmount            decimal.Decimal `json:"overdue_amount"`
	OverdueInstallmentsCount int             `json:"overdue_installments_count"`
	FirstOverdueDate         *string         `json:"first_overdue_date,omitempty"`
	ComputedAt               time.Time       `json:"computed_at"`
}

// BatchResult summarizes a batch debt reconciliation run
type BatchResult struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Failed    int `json:"failed"`
	Regular   int `json:"regular"`
	Debtor    int `json:"debtor"`
	Defaulter int `json:"defaulter"`
}
