package trade

import (
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodDinheiro      PaymentMethod = "dinheiro"
	PaymentMethodPix           PaymentMethod = "pix"
	PaymentMethodCartaoCredito PaymentMethod = "cartao_credito"
	PaymentMethodCartaoDebito  PaymentMethod = "cartao_debito"
	PaymentMethodBoleto        PaymentMethod = "boleto"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodDinheiro, PaymentMethodPix, PaymentMethodCartaoCredito,
		PaymentMethodCartaoDebito, PaymentMethodBoleto:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// SaleItem represents a line item in a sale
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a new sale line item
func NewSaleItem(saleID, productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money, discount decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Item discount cannot be negative")
	}

	now := time.Now()
	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		TotalPrice:  unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		Discount:    discount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Sale represents one completed purchase transaction.
// A sale is immutable once created; there is no update or cancel operation.
type Sale struct {
	shared.TenantAggregateRoot
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID       *uuid.UUID      `gorm:"type:uuid;index"`
	ClientName     string          `gorm:"type:varchar(200)"`
	Items          []SaleItem      `gorm:"foreignKey:SaleID;references:ID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CouponDiscount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null"`
	Installments   int             `gorm:"not null;default:1"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale shell. Items are added with AddItem and the
// final amounts fixed with SetAmounts before the sale is persisted.
func NewSale(tenantID, branchID, createdBy uuid.UUID, paymentMethod PaymentMethod, installments int) (*Sale, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Creator ID cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if installments < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}

	return &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		BranchID:            branchID,
		Items:               make([]SaleItem, 0),
		Subtotal:            decimal.Zero,
		Discount:            decimal.Zero,
		CouponDiscount:      decimal.Zero,
		TotalPrice:          decimal.Zero,
		PaymentMethod:       paymentMethod,
		Installments:        installments,
	}, nil
}

// SetClient associates the sale with a registered client
func (s *Sale) SetClient(clientID uuid.UUID, clientName string) {
	s.ClientID = &clientID
	s.ClientName = clientName
	s.Touch()
}

// AddItem appends a line item to the sale
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money, discount decimal.Decimal) (*SaleItem, error) {
	item, err := NewSaleItem(s.ID, productID, productName, quantity, unitPrice, discount)
	if err != nil {
		return nil, err
	}
	s.Items = append(s.Items, *item)
	s.Subtotal = s.Subtotal.Add(item.TotalPrice)
	s.Touch()
	return item, nil
}

// SetAmounts fixes the sale's discount and total. The total must equal
// subtotal minus discount and must be strictly positive: a zero-total sale
// is rejected as a business rule, not an oversight.
func (s *Sale) SetAmounts(discount, couponDiscount, total decimal.Decimal) error {
	if len(s.Items) == 0 {
		return shared.NewDomainError("EMPTY_SALE", "Sale must have at least one item")
	}
	if discount.IsNegative() || couponDiscount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if !total.IsPositive() {
		return shared.NewDomainError("INVALID_TOTAL", "Sale total must be positive")
	}
	if !s.Subtotal.Sub(discount).Equal(total) {
		return shared.NewDomainError("INVALID_TOTAL", "Sale total does not match subtotal minus discount")
	}

	s.Discount = discount
	s.CouponDiscount = couponDiscount
	s.TotalPrice = total
	s.Touch()
	return nil
}

// SetNotes sets free-form notes on the sale
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
	s.Touch()
}

// GetTotalMoney returns the sale total as Money
func (s *Sale) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(s.TotalPrice)
}
