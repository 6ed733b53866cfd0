package handler

import (
	tradeapp "github.com/gestor/backend/internal/application/trade"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale-related API endpoints
type SaleHandler struct {
	BaseHandler
	cartService *tradeapp.CartService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(cartService *tradeapp.CartService) *SaleHandler {
	return &SaleHandler{cartService: cartService}
}

// RegisterRoutes registers the sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	sales.POST("/cart", h.Checkout)
	sales.GET("", h.List)
	sales.GET("/:id", h.GetByID)
	sales.GET("/:id/installments", h.ListInstallments)
}

// Checkout godoc
// @Summary      Commit a cart as a sale
// @Description  Creates the sale, its installment schedule and the stock decrements atomically
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CartSubmission true "Cart submission"
// @Success      201 {object} dto.Response{data=tradeapp.SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/cart [post]
func (h *SaleHandler) Checkout(c *gin.Context) {
	var req tradeapp.CartSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	identity := tradeapp.Identity{
		TenantID: middleware.GetTenantID(c),
		BranchID: middleware.GetBranchID(c),
		UserID:   middleware.GetUserID(c),
	}

	sale, err := h.cartService.Checkout(c.Request.Context(), identity, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]tradeapp.SaleResponse,meta=dto.Meta}
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	page, err := h.cartService.ListSales(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get sale by ID
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.cartService.GetSale(c.Request.Context(), middleware.GetTenantID(c), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ListInstallments godoc
// @Summary      List the installment schedule of a sale
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]tradeapp.InstallmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id}/installments [get]
func (h *SaleHandler) ListInstallments(c *gin.Context) {
	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	installments, err := h.cartService.ListSaleInstallments(c.Request.Context(), middleware.GetTenantID(c), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, installments)
}
