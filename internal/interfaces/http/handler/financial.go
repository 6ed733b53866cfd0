package handler

import (
	financeapp "github.com/gestor/backend/internal/application/finance"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FinancialHandler handles financial ledger API endpoints
type FinancialHandler struct {
	BaseHandler
	financeService *financeapp.FinanceService
}

// NewFinancialHandler creates a new FinancialHandler
func NewFinancialHandler(financeService *financeapp.FinanceService) *FinancialHandler {
	return &FinancialHandler{financeService: financeService}
}

// RegisterRoutes registers the financial ledger routes
func (h *FinancialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	financial := rg.Group("/financial")
	financial.POST("", h.Create)
	financial.GET("", h.List)
	financial.GET("/:id", h.GetByID)
}

func financeIdentity(c *gin.Context) financeapp.Identity {
	return financeapp.Identity{
		TenantID: middleware.GetTenantID(c),
		BranchID: middleware.GetBranchID(c),
		UserID:   middleware.GetUserID(c),
	}
}

// Create godoc
// @Summary      Post a manual ledger entry
// @Tags         financial
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateEntryRequest true "Ledger entry request"
// @Success      201 {object} dto.Response{data=financeapp.EntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /financial [post]
func (h *FinancialHandler) Create(c *gin.Context) {
	var req financeapp.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.financeService.CreateEntry(c.Request.Context(), financeIdentity(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// List godoc
// @Summary      List ledger entries
// @Tags         financial
// @Produce      json
// @Param        search query string false "Search term (description)"
// @Param        reference_id query string false "Filter by referenced record" format(uuid)
// @Param        reference_type query string false "Reference type" Enums(sale, money_transfer)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.EntryResponse,meta=dto.Meta}
// @Router       /financial [get]
func (h *FinancialHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	// Reference lookups answer the full (small) set without pagination
	if refID := c.Query("reference_id"); refID != "" {
		referenceID, err := uuid.Parse(refID)
		if err != nil {
			h.BadRequest(c, "Invalid reference ID format")
			return
		}
		entries, err := h.financeService.ListEntriesByReference(c.Request.Context(), tenantID, referenceID, c.Query("reference_type"))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, entries)
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	page, err := h.financeService.ListEntries(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get ledger entry by ID
// @Tags         financial
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.EntryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /financial/{id} [get]
func (h *FinancialHandler) GetByID(c *gin.Context) {
	entryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	entry, err := h.financeService.GetEntry(c.Request.Context(), middleware.GetTenantID(c), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}
