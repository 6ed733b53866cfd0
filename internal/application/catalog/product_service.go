package catalog

import (
	"context"
	"time"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest is the input for registering a product
type CreateProductRequest struct {
	BranchID     uuid.UUID       `json:"branch_id" binding:"required"`
	Name         string          `json:"name" binding:"required,min=2,max=200"`
	Description  string          `json:"description"`
	Barcode      string          `json:"barcode"`
	SellingPrice decimal.Decimal `json:"selling_price" binding:"required"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
}

// AdjustStockRequest is the input for a manual stock adjustment
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"min_stock"`
	Status        string          `json:"status"`
	BelowMinStock bool            `json:"below_min_stock"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		BranchID:      product.BranchID,
		Name:          product.Name,
		Description:   product.Description,
		Barcode:       product.Barcode,
		SellingPrice:  product.SellingPrice,
		Stock:         product.Stock,
		MinStock:      product.MinStock,
		Status:        product.Status.String(),
		BelowMinStock: product.IsBelowMinStock(),
		CreatedAt:     product.CreatedAt,
	}
}

// ProductService manages the product catalog
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, logger: logger}
}

// CreateProduct registers a new product for the tenant
func (s *ProductService) CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, req.BranchID, req.Name,
		valueobject.NewMoneyBRL(req.SellingPrice), req.Stock)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	if req.Barcode != "" {
		product.SetBarcode(req.Barcode)
	}
	if req.MinStock > 0 {
		if err := product.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product registered",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetProduct returns a single product by ID
func (s *ProductService) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns a page of products for the tenant
func (s *ProductService) ListProducts(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// AdjustStock applies a manual stock adjustment to a product
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, id uuid.UUID, delta int) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(delta); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", id.String()),
		zap.Int("delta", delta),
		zap.Int("stock", product.Stock))

	resp := ToProductResponse(product)
	return &resp, nil
}
