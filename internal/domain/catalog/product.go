package catalog

import (
	"strings"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// Product represents a sellable item owned by a branch.
// Stock is tracked per product; decrements happen through the repository's
// conditional update so concurrent checkouts cannot oversell.
type Product struct {
	shared.TenantAggregateRoot
	BranchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	Barcode      string          `gorm:"type:varchar(50);index"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	MinStock     int             `gorm:"not null;default:0"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID, branchID uuid.UUID, name string, sellingPrice valueobject.Money, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BranchID:            branchID,
		Name:                name,
		SellingPrice:        sellingPrice.Amount(),
		Stock:               stock,
		Status:              ProductStatusActive,
	}, nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) {
	p.Barcode = barcode
	p.Touch()
}

// SetMinStock sets the minimum stock level for low-stock alerts
func (p *Product) SetMinStock(minStock int) error {
	if minStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
	}
	p.MinStock = minStock
	p.Touch()
	return nil
}

// AdjustStock applies a manual stock correction (positive or negative delta)
func (p *Product) AdjustStock(delta int) error {
	if p.Stock+delta < 0 {
		return shared.ErrInsufficientStock
	}
	p.Stock += delta
	p.Touch()
	return nil
}

// IsBelowMinStock returns true if the stock fell below the alert threshold
func (p *Product) IsBelowMinStock() bool {
	return p.MinStock > 0 && p.Stock < p.MinStock
}

// GetSellingPriceMoney returns the selling price as Money
func (p *Product) GetSellingPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.SellingPrice)
}
