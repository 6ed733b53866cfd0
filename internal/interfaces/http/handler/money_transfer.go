package handler

import (
	financeapp "github.com/gestor/backend/internal/application/finance"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// MoneyTransferHandler handles money transfer API endpoints
type MoneyTransferHandler struct {
	BaseHandler
	transferService *financeapp.TransferService
}

// NewMoneyTransferHandler creates a new MoneyTransferHandler
func NewMoneyTransferHandler(transferService *financeapp.TransferService) *MoneyTransferHandler {
	return &MoneyTransferHandler{transferService: transferService}
}

// RegisterRoutes registers the money transfer routes
func (h *MoneyTransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transfers := rg.Group("/money-transfers")
	transfers.POST("", h.Create)
	transfers.GET("", h.List)
	transfers.GET("/:id", h.GetByID)
	transfers.PATCH("/:id", h.UpdateStatus)
}

// Create godoc
// @Summary      Request a money transfer between branches
// @Tags         money-transfers
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateTransferRequest true "Transfer request"
// @Success      201 {object} dto.Response{data=financeapp.TransferResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /money-transfers [post]
func (h *MoneyTransferHandler) Create(c *gin.Context) {
	var req financeapp.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), financeIdentity(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, transfer)
}

// List godoc
// @Summary      List money transfers
// @Tags         money-transfers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.TransferResponse}
// @Router       /money-transfers [get]
func (h *MoneyTransferHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	transfers, err := h.transferService.ListTransfers(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfers)
}

// GetByID godoc
// @Summary      Get money transfer by ID
// @Tags         money-transfers
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.TransferResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /money-transfers/{id} [get]
func (h *MoneyTransferHandler) GetByID(c *gin.Context) {
	transferID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), middleware.GetTenantID(c), transferID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfer)
}

// UpdateStatus godoc
// @Summary      Advance a money transfer through its lifecycle
// @Description  Completing a transfer posts the paired ledger entries for both branches exactly once
// @Tags         money-transfers
// @Accept       json
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Param        request body financeapp.UpdateTransferStatusRequest true "Status change request"
// @Success      200 {object} dto.Response{data=financeapp.TransferResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /money-transfers/{id} [patch]
func (h *MoneyTransferHandler) UpdateStatus(c *gin.Context) {
	transferID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	var req financeapp.UpdateTransferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transfer, err := h.transferService.UpdateTransferStatus(c.Request.Context(), financeIdentity(c), transferID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfer)
}
