package trade

import (
	"context"
	"testing"
	"time"

	appshared "github.com/gestor/backend/internal/application/shared"
	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/finance"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSaleRepo struct{ mock.Mock }

func (m *mockSaleRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *mockSaleRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *mockSaleRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSaleRepo) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

type mockInstallmentRepo struct{ mock.Mock }

func (m *mockInstallmentRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Installment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Installment), args.Error(1)
}

func (m *mockInstallmentRepo) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]trade.Installment, error) {
	args := m.Called(ctx, tenantID, saleID)
	return args.Get(0).([]trade.Installment), args.Error(1)
}

func (m *mockInstallmentRepo) FindOverdueByClient(ctx context.Context, tenantID, clientID uuid.UUID, before time.Time) ([]trade.Installment, error) {
	args := m.Called(ctx, tenantID, clientID, before)
	return args.Get(0).([]trade.Installment), args.Error(1)
}

func (m *mockInstallmentRepo) Save(ctx context.Context, installment *trade.Installment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) DecrementStock(ctx context.Context, tenantID, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, tenantID, productID, quantity)
	return args.Error(0)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *mockClientRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *mockClientRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClientRepo) FindIDsWithSales(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockClientRepo) FindOverdue(ctx context.Context, tenantID uuid.UUID) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *mockClientRepo) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepo) UpdateDebtSummary(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

type mockEntryRepo struct{ mock.Mock }

func (m *mockEntryRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.FinancialEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialEntry), args.Error(1)
}

func (m *mockEntryRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.FinancialEntry, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.FinancialEntry), args.Error(1)
}

func (m *mockEntryRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEntryRepo) FindByReference(ctx context.Context, tenantID, referenceID uuid.UUID, referenceType string) ([]finance.FinancialEntry, error) {
	args := m.Called(ctx, tenantID, referenceID, referenceType)
	return args.Get(0).([]finance.FinancialEntry), args.Error(1)
}

func (m *mockEntryRepo) Save(ctx context.Context, entry *finance.FinancialEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type checkoutRepos struct {
	sales        *mockSaleRepo
	installments *mockInstallmentRepo
	products     *mockProductRepo
}

func (r *checkoutRepos) SaleRepo() trade.SaleRepository               { return r.sales }
func (r *checkoutRepos) InstallmentRepo() trade.InstallmentRepository { return r.installments }
func (r *checkoutRepos) ProductRepo() catalog.ProductRepository       { return r.products }

type cartFixture struct {
	service      *CartService
	sales        *mockSaleRepo
	installments *mockInstallmentRepo
	products     *mockProductRepo
	clients      *mockClientRepo
	entries      *mockEntryRepo
	identity     Identity
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	f := &cartFixture{
		sales:        &mockSaleRepo{},
		installments: &mockInstallmentRepo{},
		products:     &mockProductRepo{},
		clients:      &mockClientRepo{},
		entries:      &mockEntryRepo{},
		identity: Identity{
			TenantID: uuid.New(),
			BranchID: uuid.New(),
			UserID:   uuid.New(),
		},
	}
	scope := NewNoOpCheckoutScope(&checkoutRepos{
		sales:        f.sales,
		installments: f.installments,
		products:     f.products,
	})
	f.service = NewCartService(scope, f.sales, f.installments, f.clients, f.entries, appshared.NoOpInvalidator{}, zap.NewNop())
	return f
}

func validSubmission() CartSubmission {
	productID := uuid.New()
	return CartSubmission{
		Items: []CartItemInput{
			{
				ProductID:   productID,
				ProductName: "Tinta Acrilica 18L",
				Quantity:    2,
				UnitPrice:   decimal.NewFromFloat(75.50),
				TotalPrice:  decimal.NewFromFloat(151.00),
				Discount:    decimal.Zero,
			},
		},
		Subtotal:      decimal.NewFromFloat(151.00),
		Discount:      decimal.Zero,
		TotalAmount:   decimal.NewFromFloat(151.00),
		PaymentMethod: "pix",
		Installments:  1,
	}
}

func TestCartService_Checkout(t *testing.T) {
	t.Run("commits single payment sale with stock decrement and ledger entry", func(t *testing.T) {
		f := newCartFixture(t)
		req := validSubmission()

		f.products.On("DecrementStock", mock.Anything, f.identity.TenantID, req.Items[0].ProductID, 2).Return(nil)
		f.sales.On("Save", mock.Anything, mock.AnythingOfType("*trade.Sale")).Return(nil)
		f.entries.On("Save", mock.Anything, mock.AnythingOfType("*finance.FinancialEntry")).Return(nil)

		resp, err := f.service.Checkout(context.Background(), f.identity, req)
		require.NoError(t, err)
		assert.True(t, resp.TotalPrice.Equal(decimal.NewFromFloat(151.00)))
		assert.Equal(t, "pix", resp.PaymentMethod)

		f.products.AssertExpectations(t)
		f.sales.AssertExpectations(t)
		f.entries.AssertExpectations(t)
		f.installments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

		entry := f.entries.Calls[0].Arguments.Get(1).(*finance.FinancialEntry)
		assert.Equal(t, finance.EntryTypeIncome, entry.Type)
		assert.Equal(t, finance.CategorySales, entry.Category)
		assert.Equal(t, finance.EntryStatusPaid, entry.Status)
		assert.Equal(t, finance.ReferenceTypeSale, entry.ReferenceType)
		require.NotNil(t, entry.ReferenceID)
		assert.Equal(t, resp.ID, *entry.ReferenceID)
	})

	t.Run("commits parcelled sale with supplied installment schedule", func(t *testing.T) {
		f := newCartFixture(t)
		clientID := uuid.New()
		client, err := partner.NewClient(f.identity.TenantID, f.identity.BranchID, "Carlos Mendes", partner.ClientTypeIndividual)
		require.NoError(t, err)

		req := validSubmission()
		req.Items[0].Quantity = 4
		req.Items[0].UnitPrice = decimal.NewFromFloat(75.00)
		req.Items[0].TotalPrice = decimal.NewFromFloat(300.00)
		req.Subtotal = decimal.NewFromFloat(300.00)
		req.TotalAmount = decimal.NewFromFloat(300.00)
		req.PaymentMethod = "boleto"
		req.ClientID = &clientID
		req.Installments = 3
		req.InstallmentDetails = []InstallmentDetailInput{
			{Amount: decimal.NewFromFloat(100.00), DueDate: "2026-09-15"},
			{Amount: decimal.NewFromFloat(100.00), DueDate: "2026-10-15"},
			{Amount: decimal.NewFromFloat(100.00), DueDate: "2026-11-15"},
		}

		f.clients.On("FindByIDForTenant", mock.Anything, f.identity.TenantID, clientID).Return(client, nil)
		f.products.On("DecrementStock", mock.Anything, f.identity.TenantID, req.Items[0].ProductID, 4).Return(nil)
		f.sales.On("Save", mock.Anything, mock.AnythingOfType("*trade.Sale")).Return(nil)
		f.installments.On("Save", mock.Anything, mock.AnythingOfType("*trade.Installment")).Return(nil).Times(3)
		f.entries.On("Save", mock.Anything, mock.AnythingOfType("*finance.FinancialEntry")).Return(nil)

		resp, err := f.service.Checkout(context.Background(), f.identity, req)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Installments)
		assert.Equal(t, "Carlos Mendes", resp.ClientName)

		f.installments.AssertExpectations(t)
		for i, call := range f.installments.Calls {
			inst := call.Arguments.Get(1).(*trade.Installment)
			assert.Equal(t, i+1, inst.InstallmentNumber)
			assert.Equal(t, 3, inst.TotalInstallments)
			assert.True(t, inst.Amount.Equal(decimal.NewFromFloat(100.00)))
			assert.Equal(t, resp.ID, inst.SaleID)
			assert.Equal(t, trade.InstallmentStatusPending, inst.Status)
		}
		assert.Equal(t, "2026-09-15", f.installments.Calls[0].Arguments.Get(1).(*trade.Installment).DueDate.Format("2006-01-02"))
		assert.Equal(t, "2026-11-15", f.installments.Calls[2].Arguments.Get(1).(*trade.Installment).DueDate.Format("2006-01-02"))
	})

	t.Run("rejects empty cart naming the items field", func(t *testing.T) {
		f := newCartFixture(t)
		req := validSubmission()
		req.Items = nil

		_, err := f.service.Checkout(context.Background(), f.identity, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION", domainErr.Code)
		assert.Contains(t, domainErr.Message, "items")
		f.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects zero total", func(t *testing.T) {
		f := newCartFixture(t)
		req := validSubmission()
		req.Discount = decimal.NewFromFloat(151.00)
		req.TotalAmount = decimal.Zero

		_, err := f.service.Checkout(context.Background(), f.identity, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Message, "total_amount")
		f.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects item total that disagrees with quantity times unit price", func(t *testing.T) {
		f := newCartFixture(t)
		req := validSubmission()
		req.Items[0].TotalPrice = decimal.NewFromFloat(150.00)

		_, err := f.service.Checkout(context.Background(), f.identity, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Message, "items[0].total_price")
	})

	t.Run("commits anonymous parcelled sale with supplied installment schedule", func(t *testing.T) {
		f := newCartFixture(t)

		req := validSubmission()
		req.Items[0].Quantity = 2
		req.Items[0].UnitPrice = decimal.NewFromFloat(100.00)
		req.Items[0].TotalPrice = decimal.NewFromFloat(200.00)
		req.Subtotal = decimal.NewFromFloat(200.00)
		req.TotalAmount = decimal.NewFromFloat(200.00)
		req.PaymentMethod = "boleto"
		req.Installments = 2
		req.InstallmentDetails = []InstallmentDetailInput{
			{Amount: decimal.NewFromFloat(100.00), DueDate: "2026-09-15"},
			{Amount: decimal.NewFromFloat(100.00), DueDate: "2026-10-15"},
		}

		f.products.On("DecrementStock", mock.Anything, f.identity.TenantID, req.Items[0].ProductID, 2).Return(nil)
		f.sales.On("Save", mock.Anything, mock.AnythingOfType("*trade.Sale")).Return(nil)
		f.installments.On("Save", mock.Anything, mock.AnythingOfType("*trade.Installment")).Return(nil).Times(2)
		f.entries.On("Save", mock.Anything, mock.AnythingOfType("*finance.FinancialEntry")).Return(nil)

		resp, err := f.service.Checkout(context.Background(), f.identity, req)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Installments)
		assert.Empty(t, resp.ClientName)

		f.installments.AssertExpectations(t)
		f.clients.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects total too small to split into installments", func(t *testing.T) {
		f := newCartFixture(t)

		req := validSubmission()
		req.Items[0].Quantity = 1
		req.Items[0].UnitPrice = decimal.NewFromFloat(0.05)
		req.Items[0].TotalPrice = decimal.NewFromFloat(0.05)
		req.Subtotal = decimal.NewFromFloat(0.05)
		req.TotalAmount = decimal.NewFromFloat(0.05)
		req.PaymentMethod = "boleto"
		req.Installments = 12

		_, err := f.service.Checkout(context.Background(), f.identity, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION", domainErr.Code)
		assert.Contains(t, domainErr.Message, "installments:")
		f.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects installment schedule that does not sum to total", func(t *testing.T) {
		f := newCartFixture(t)
		clientID := uuid.New()
		client, err := partner.NewClient(f.identity.TenantID, f.identity.BranchID, "Carlos Mendes", partner.ClientTypeIndividual)
		require.NoError(t, err)

		req := validSubmission()
		req.ClientID = &clientID
		req.Installments = 2
		req.InstallmentDetails = []InstallmentDetailInput{
			{Amount: decimal.NewFromFloat(50.00), DueDate: "2026-09-15"},
			{Amount: decimal.NewFromFloat(50.00), DueDate: "2026-10-15"},
		}
		f.clients.On("FindByIDForTenant", mock.Anything, f.identity.TenantID, clientID).Return(client, nil)

		_, err = f.service.Checkout(context.Background(), f.identity, req)
		require.Error(t, err)
		f.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.installments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when a referenced client does not exist", func(t *testing.T) {
		f := newCartFixture(t)
		clientID := uuid.New()
		req := validSubmission()
		req.ClientID = &clientID

		f.clients.On("FindByIDForTenant", mock.Anything, f.identity.TenantID, clientID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Checkout(context.Background(), f.identity, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CLIENT_NOT_FOUND", domainErr.Code)
	})

	t.Run("aborts commit when stock is insufficient", func(t *testing.T) {
		f := newCartFixture(t)
		req := validSubmission()

		f.products.On("DecrementStock", mock.Anything, f.identity.TenantID, req.Items[0].ProductID, 2).
			Return(shared.ErrInsufficientStock)

		_, err := f.service.Checkout(context.Background(), f.identity, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Tinta Acrilica 18L")
		f.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.entries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("sale survives a failed ledger entry", func(t *testing.T) {
		f := newCartFixture(t)
		req := validSubmission()

		f.products.On("DecrementStock", mock.Anything, f.identity.TenantID, req.Items[0].ProductID, 2).Return(nil)
		f.sales.On("Save", mock.Anything, mock.AnythingOfType("*trade.Sale")).Return(nil)
		f.entries.On("Save", mock.Anything, mock.AnythingOfType("*finance.FinancialEntry")).
			Return(shared.ErrDependency)

		resp, err := f.service.Checkout(context.Background(), f.identity, req)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
	})

	t.Run("generates a monthly plan when parcelled without details", func(t *testing.T) {
		f := newCartFixture(t)
		req := validSubmission()
		req.Installments = 3
		req.Items[0].Quantity = 2
		req.Items[0].UnitPrice = decimal.NewFromFloat(50.00)
		req.Items[0].TotalPrice = decimal.NewFromFloat(100.00)
		req.Subtotal = decimal.NewFromFloat(100.00)
		req.TotalAmount = decimal.NewFromFloat(100.00)

		f.products.On("DecrementStock", mock.Anything, f.identity.TenantID, req.Items[0].ProductID, 2).Return(nil)
		f.sales.On("Save", mock.Anything, mock.AnythingOfType("*trade.Sale")).Return(nil)
		f.installments.On("Save", mock.Anything, mock.AnythingOfType("*trade.Installment")).Return(nil).Times(3)
		f.entries.On("Save", mock.Anything, mock.AnythingOfType("*finance.FinancialEntry")).Return(nil)

		_, err := f.service.Checkout(context.Background(), f.identity, req)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, call := range f.installments.Calls {
			sum = sum.Add(call.Arguments.Get(1).(*trade.Installment).Amount)
		}
		assert.True(t, sum.Equal(decimal.NewFromFloat(100.00)), "schedule must sum exactly to the total")
	})
}

func TestCartService_ListSaleInstallments(t *testing.T) {
	f := newCartFixture(t)
	saleID := uuid.New()
	inst, err := trade.NewInstallment(f.identity.TenantID, f.identity.BranchID, f.identity.UserID, saleID, 1, 1,
		decimal.NewFromFloat(99.90), time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f.installments.On("FindBySale", mock.Anything, f.identity.TenantID, saleID).
		Return([]trade.Installment{*inst}, nil)

	items, err := f.service.ListSaleInstallments(context.Background(), f.identity.TenantID, saleID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2026-10-01", items[0].DueDate)
	assert.Equal(t, "pending", items[0].Status)
}
