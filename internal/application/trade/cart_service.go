package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	appshared "github.com/gestor/backend/internal/application/shared"
	"github.com/gestor/backend/internal/domain/finance"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// CartService turns a validated cart submission into a persisted sale with
// its installment schedule, stock decrements and ledger entry.
type CartService struct {
	scope           CheckoutScope
	saleRepo        trade.SaleRepository
	installmentRepo trade.InstallmentRepository
	clientRepo      partner.ClientRepository
	entryRepo       finance.FinancialEntryRepository
	cache           appshared.CacheInvalidator
	logger          *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	scope CheckoutScope,
	saleRepo trade.SaleRepository,
	installmentRepo trade.InstallmentRepository,
	clientRepo partner.ClientRepository,
	entryRepo finance.FinancialEntryRepository,
	cache appshared.CacheInvalidator,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		scope:           scope,
		saleRepo:        saleRepo,
		installmentRepo: installmentRepo,
		clientRepo:      clientRepo,
		entryRepo:       entryRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Checkout commits a cart as a sale.
//
// The sale, its installment schedule and the stock decrements are written in
// one transaction: either the whole commit lands or none of it does. The
// financial ledger entry is posted after the transaction commits and is
// best-effort; a ledger failure is logged but never undoes the sale.
func (s *CartService) Checkout(ctx context.Context, identity Identity, req CartSubmission) (*SaleResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	clientName := req.ClientName
	if req.ClientID != nil {
		client, err := s.clientRepo.FindByIDForTenant(ctx, identity.TenantID, *req.ClientID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Client not found")
			}
			return nil, err
		}
		if clientName == "" {
			clientName = client.Name
		}
	}

	sale, err := trade.NewSale(identity.TenantID, identity.BranchID, identity.UserID, trade.PaymentMethod(req.PaymentMethod), s.installmentCount(req))
	if err != nil {
		return nil, err
	}
	if req.ClientID != nil {
		sale.SetClient(*req.ClientID, clientName)
	}
	if req.Notes != "" {
		sale.SetNotes(req.Notes)
	}
	for _, item := range req.Items {
		if _, err := sale.AddItem(item.ProductID, item.ProductName, item.Quantity, valueobject.NewMoneyBRL(item.UnitPrice), item.Discount); err != nil {
			return nil, err
		}
	}
	if err := sale.SetAmounts(req.Discount, req.CouponDiscount, req.TotalAmount); err != nil {
		return nil, err
	}

	plan, err := s.resolveSchedule(req, sale)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos CheckoutRepositories) error {
		for _, item := range req.Items {
			if err := repos.ProductRepo().DecrementStock(ctx, identity.TenantID, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("Insufficient stock for product %s", item.ProductName))
				}
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf("Product %s not found", item.ProductName))
				}
				return err
			}
		}
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}
		for i, planned := range plan {
			inst, err := trade.NewInstallment(identity.TenantID, identity.BranchID, identity.UserID, sale.ID, i+1, len(plan), planned.Amount, planned.DueDate)
			if err != nil {
				return err
			}
			if err := repos.InstallmentRepo().Save(ctx, inst); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.postLedgerEntry(ctx, identity, sale)
	s.invalidateCaches(ctx, identity.TenantID)

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetSale returns a single sale by ID
func (s *CartService) GetSale(ctx context.Context, tenantID, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// ListSales returns a page of sales for the tenant
func (s *CartService) ListSales(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SaleResponse, len(sales))
	for i := range sales {
		items[i] = ToSaleResponse(&sales[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListSaleInstallments returns the installment schedule of a sale
func (s *CartService) ListSaleInstallments(ctx context.Context, tenantID, saleID uuid.UUID) ([]InstallmentResponse, error) {
	installments, err := s.installmentRepo.FindBySale(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	items := make([]InstallmentResponse, len(installments))
	for i := range installments {
		items[i] = ToInstallmentResponse(&installments[i])
	}
	return items, nil
}

func (s *CartService) installmentCount(req CartSubmission) int {
	if req.Installments < 1 {
		return 1
	}
	return req.Installments
}

// resolveSchedule decides which installment schedule the sale gets: the
// caller-supplied details when present, a generated monthly plan when the
// sale is parcelled without details, and no schedule at all for a single
// up-front payment.
func (s *CartService) resolveSchedule(req CartSubmission, sale *trade.Sale) ([]trade.PlannedInstallment, error) {
	if len(req.InstallmentDetails) > 0 {
		plan := make([]trade.PlannedInstallment, len(req.InstallmentDetails))
		for i, detail := range req.InstallmentDetails {
			dueDate, err := time.Parse("2006-01-02", detail.DueDate)
			if err != nil {
				return nil, shared.NewDomainError("VALIDATION", fmt.Sprintf("installment_details[%d].due_date: expected YYYY-MM-DD", i))
			}
			plan[i] = trade.PlannedInstallment{Amount: detail.Amount, DueDate: dueDate}
		}
		if err := trade.ValidateInstallmentDetails(plan, sale.Installments, sale.TotalPrice); err != nil {
			return nil, err
		}
		return plan, nil
	}
	if sale.Installments > 1 {
		return trade.BuildInstallmentPlan(sale.TotalPrice, sale.Installments, sale.CreatedAt)
	}
	return nil, nil
}

// validate checks the submission field by field and names the first
// offending field in the error message.
func (s *CartService) validate(req CartSubmission) error {
	if len(req.Items) == 0 {
		return shared.NewDomainError("VALIDATION", "items: cart must contain at least one item")
	}
	for i, item := range req.Items {
		switch {
		case item.ProductID == uuid.Nil:
			return shared.NewDomainError("VALIDATION", fmt.Sprintf("items[%d].product_id: required", i))
		case item.ProductName == "":
			return shared.NewDomainError("VALIDATION", fmt.Sprintf("items[%d].product_name: required", i))
		case item.Quantity <= 0:
			return shared.NewDomainError("VALIDATION", fmt.Sprintf("items[%d].quantity: must be positive", i))
		case !item.UnitPrice.IsPositive():
			return shared.NewDomainError("VALIDATION", fmt.Sprintf("items[%d].unit_price: must be positive", i))
		case item.Discount.IsNegative():
			return shared.NewDomainError("VALIDATION", fmt.Sprintf("items[%d].discount: cannot be negative", i))
		case !item.TotalPrice.Equal(item.UnitPrice.Mul(decimalFromInt(item.Quantity))):
			return shared.NewDomainError("VALIDATION", fmt.Sprintf("items[%d].total_price: does not match quantity times unit price", i))
		}
	}
	if req.Subtotal.IsNegative() {
		return shared.NewDomainError("VALIDATION", "subtotal: cannot be negative")
	}
	if req.Discount.IsNegative() {
		return shared.NewDomainError("VALIDATION", "discount: cannot be negative")
	}
	if req.CouponDiscount.IsNegative() {
		return shared.NewDomainError("VALIDATION", "coupon_discount: cannot be negative")
	}
	if req.CouponDiscount.GreaterThan(req.Discount) {
		return shared.NewDomainError("VALIDATION", "coupon_discount: cannot exceed total discount")
	}
	if !req.TotalAmount.IsPositive() {
		return shared.NewDomainError("VALIDATION", "total_amount: must be positive")
	}
	if !trade.PaymentMethod(req.PaymentMethod).IsValid() {
		return shared.NewDomainError("VALIDATION", "payment_method: unknown payment method")
	}
	if req.Installments < 0 {
		return shared.NewDomainError("VALIDATION", "installments: must be at least 1")
	}
	if req.Installments > 1 && req.TotalAmount.LessThan(decimal.New(int64(req.Installments), -2)) {
		return shared.NewDomainError("VALIDATION", "installments: total_amount cannot cover one cent per installment")
	}
	return nil
}

func (s *CartService) postLedgerEntry(ctx context.Context, identity Identity, sale *trade.Sale) {
	entry, err := finance.NewFinancialEntry(
		identity.TenantID,
		identity.BranchID,
		identity.UserID,
		finance.EntryTypeIncome,
		sale.GetTotalMoney(),
		fmt.Sprintf("Venda %s", sale.ID),
		finance.CategorySales,
		finance.EntryStatusPaid,
	)
	if err != nil {
		s.logger.Error("building ledger entry for sale failed",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err))
		return
	}
	entry.SetReference(sale.ID, finance.ReferenceTypeSale)
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		s.logger.Error("posting ledger entry for sale failed",
			zap.String("sale_id", sale.ID.String()),
			zap.String("tenant_id", identity.TenantID.String()),
			zap.Error(err))
	}
}

func (s *CartService) invalidateCaches(ctx context.Context, tenantID uuid.UUID) {
	keys := []string{
		fmt.Sprintf("sales:%s", tenantID),
		fmt.Sprintf("products:%s", tenantID),
		fmt.Sprintf("financial:%s", tenantID),
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidation after checkout failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}
}
