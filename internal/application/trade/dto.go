package trade

import (
	"time"

	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Identity carries the trusted principal and scope of a request. The
// authentication mechanism itself is external; callers supply these values
// from the auth context.
type Identity struct {
	TenantID uuid.UUID
	BranchID uuid.UUID
	UserID   uuid.UUID
}

// CartItemInput is one line of a cart submission
type CartItemInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	TotalPrice  decimal.Decimal `json:"total_price" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
}

// InstallmentDetailInput is one entry of a caller-supplied installment schedule
type InstallmentDetailInput struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	DueDate string          `json:"due_date" binding:"required"` // YYYY-MM-DD
}

// CartSubmission is the input contract of the checkout workflow
type CartSubmission struct {
	Items              []CartItemInput          `json:"items" binding:"required"`
	ClientID           *uuid.UUID               `json:"client_id"`
	ClientName         string                   `json:"client_name"`
	Subtotal           decimal.Decimal          `json:"subtotal"`
	Discount           decimal.Decimal          `json:"discount"`
	CouponDiscount     decimal.Decimal          `json:"coupon_discount"`
	TotalAmount        decimal.Decimal          `json:"total_amount"`
	PaymentMethod      string                   `json:"payment_method" binding:"required"`
	Installments       int                      `json:"installments"`
	InstallmentDetails []InstallmentDetailInput `json:"installment_details"`
	Notes              string                   `json:"notes"`
}

// SaleItemResponse is one line item of a created sale
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// SaleResponse is the API representation of a sale
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	BranchID       uuid.UUID          `json:"branch_id"`
	ClientID       *uuid.UUID         `json:"client_id,omitempty"`
	ClientName     string             `json:"client_name,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	CouponDiscount decimal.Decimal    `json:"coupon_discount"`
	TotalPrice     decimal.Decimal    `json:"total_price"`
	PaymentMethod  string             `json:"payment_method"`
	Installments   int                `json:"installments"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ToSaleResponse converts a domain sale to its API representation
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Discount:    item.Discount,
		}
	}
	return SaleResponse{
		ID:             sale.ID,
		BranchID:       sale.BranchID,
		ClientID:       sale.ClientID,
		ClientName:     sale.ClientName,
		Items:          items,
		Subtotal:       sale.Subtotal,
		Discount:       sale.Discount,
		CouponDiscount: sale.CouponDiscount,
		TotalPrice:     sale.TotalPrice,
		PaymentMethod:  sale.PaymentMethod.String(),
		Installments:   sale.Installments,
		Notes:          sale.Notes,
		CreatedAt:      sale.CreatedAt,
	}
}

// InstallmentResponse is the API representation of an installment
type InstallmentResponse struct {
	ID                uuid.UUID       `json:"id"`
	SaleID            uuid.UUID       `json:"sale_id"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           string          `json:"due_date"`
	Status            string          `json:"status"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
}

// ToInstallmentResponse converts a domain installment to its API representation
func ToInstallmentResponse(inst *trade.Installment) InstallmentResponse {
	return InstallmentResponse{
		ID:                inst.ID,
		SaleID:            inst.SaleID,
		InstallmentNumber: inst.InstallmentNumber,
		TotalInstallments: inst.TotalInstallments,
		Amount:            inst.Amount,
		DueDate:           inst.DueDate.Format("2006-01-02"),
		Status:            inst.Status.String(),
		PaidAt:            inst.PaidAt,
	}
}
