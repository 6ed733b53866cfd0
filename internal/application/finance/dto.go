package finance

import (
	"time"

	"github.com/gestor/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Identity carries the trusted principal and scope of a request
type Identity struct {
	TenantID uuid.UUID
	BranchID uuid.UUID
	UserID   uuid.UUID
}

// CreateEntryRequest is the input for posting a manual ledger entry
type CreateEntryRequest struct {
	BranchID    uuid.UUID       `json:"branch_id" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Status      string          `json:"status" binding:"omitempty,oneof=paid pending overdue"`
	EntryDate   string          `json:"entry_date"` // YYYY-MM-DD, defaults to today
}

// EntryResponse is the API representation of a ledger line
type EntryResponse struct {
	ID            uuid.UUID       `json:"id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	EntryDate     string          `json:"entry_date"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToEntryResponse converts a domain entry to its API representation
func ToEntryResponse(entry *finance.FinancialEntry) EntryResponse {
	return EntryResponse{
		ID:            entry.ID,
		BranchID:      entry.BranchID,
		Type:          entry.Type.String(),
		Amount:        entry.Amount,
		Description:   entry.Description,
		Category:      entry.Category,
		Status:        string(entry.Status),
		EntryDate:     entry.EntryDate.Format("2006-01-02"),
		ReferenceID:   entry.ReferenceID,
		ReferenceType: entry.ReferenceType,
		CreatedAt:     entry.CreatedAt,
	}
}

// CreateTransferRequest is the input for requesting an inter-branch transfer
type CreateTransferRequest struct {
	FromBranchID uuid.UUID       `json:"from_branch_id" binding:"required"`
	ToBranchID   uuid.UUID       `json:"to_branch_id" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description"`
}

// UpdateTransferStatusRequest is the input for moving a transfer through its
// lifecycle
type UpdateTransferStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved completed rejected"`
}

// TransferResponse is the API representation of a money transfer
type TransferResponse struct {
	ID           uuid.UUID       `json:"id"`
	FromBranchID uuid.UUID       `json:"from_branch_id"`
	ToBranchID   uuid.UUID       `json:"to_branch_id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Status       string          `json:"status"`
	TransferDate string          `json:"transfer_date"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToTransferResponse converts a domain transfer to its API representation
func ToTransferResponse(transfer *finance.MoneyTransfer) TransferResponse {
	return TransferResponse{
		ID:           transfer.ID,
		FromBranchID: transfer.FromBranchID,
		ToBranchID:   transfer.ToBranchID,
		Amount:       transfer.Amount,
		Description:  transfer.Description,
		Status:       transfer.Status.String(),
		TransferDate: transfer.TransferDate.Format("2006-01-02"),
		CompletedAt:  transfer.CompletedAt,
		CreatedAt:    transfer.CreatedAt,
	}
}
