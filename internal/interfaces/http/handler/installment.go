package handler

import (
	tradeapp "github.com/gestor/backend/internal/application/trade"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InstallmentHandler handles installment-related API endpoints
type InstallmentHandler struct {
	BaseHandler
	installmentService *tradeapp.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(installmentService *tradeapp.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// RegisterRoutes registers the installment routes
func (h *InstallmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	installments := rg.Group("/installments")
	installments.PATCH("/:id/status", h.UpdateStatus)
}

// UpdateStatusRequest represents an installment status change
// @Description Request body for settling an installment
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid"`
}

// UpdateStatus godoc
// @Summary      Settle an installment
// @Description  Marks a pending installment as paid and refreshes the client's debt classification
// @Tags         installments
// @Accept       json
// @Produce      json
// @Param        id path string true "Installment ID" format(uuid)
// @Param        request body UpdateStatusRequest true "Status change request"
// @Success      200 {object} dto.Response{data=tradeapp.InstallmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /installments/{id}/status [patch]
func (h *InstallmentHandler) UpdateStatus(c *gin.Context) {
	installmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid installment ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	installment, err := h.installmentService.MarkInstallmentPaid(c.Request.Context(), middleware.GetTenantID(c), installmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, installment)
}
