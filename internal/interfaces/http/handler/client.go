package handler

import (
	partnerapp "github.com/gestor/backend/internal/application/partner"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
	debtService   *partnerapp.DebtService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService, debtService *partnerapp.DebtService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		debtService:   debtService,
	}
}

// RegisterRoutes registers the client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	clients.POST("", h.Create)
	clients.GET("", h.List)
	clients.GET("/overdue", h.ListOverdue)
	clients.GET("/:id", h.GetByID)
	clients.PUT("/:id", h.Update)
	clients.GET("/:id/debt-status", h.GetDebtStatus)
	clients.POST("/:id/update-debt-status", h.UpdateDebtStatus)
	clients.POST("/update-all-debt-status", h.UpdateAllDebtStatus)
}

// Create godoc
// @Summary      Register a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateClientRequest true "Client registration request"
// @Success      201 {object} dto.Response{data=partnerapp.ClientResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// List godoc
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        search query string false "Search term (name, email, document)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]partnerapp.ClientResponse,meta=dto.Meta}
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	page, err := h.clientService.ListClients(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListOverdue godoc
// @Summary      List clients with overdue debt
// @Description  Returns every client currently classified as debtor or defaulter
// @Tags         clients
// @Produce      json
// @Success      200 {object} dto.Response{data=[]partnerapp.ClientResponse}
// @Router       /clients/overdue [get]
func (h *ClientHandler) ListOverdue(c *gin.Context) {
	clients, err := h.clientService.ListOverdueClients(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, clients)
}

// GetByID godoc
// @Summary      Get client by ID
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.ClientResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetByID(c *gin.Context) {
	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), middleware.GetTenantID(c), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Update godoc
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id path string true "Client ID" format(uuid)
// @Param        request body partnerapp.UpdateClientRequest true "Client update request"
// @Success      200 {object} dto.Response{data=partnerapp.ClientResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), middleware.GetTenantID(c), clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// GetDebtStatus godoc
// @Summary      Get the stored debt classification of a client
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.ClientResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /clients/{id}/debt-status [get]
func (h *ClientHandler) GetDebtStatus(c *gin.Context) {
	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), middleware.GetTenantID(c), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// UpdateDebtStatus godoc
// @Summary      Recompute the debt classification of a client
// @Description  Reclassifies the client from the pending installments past due today
// @Tags         clients
// @Produce      json
// @Param        id path string true "Client ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.DebtStatusResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /clients/{id}/update-debt-status [post]
func (h *ClientHandler) UpdateDebtStatus(c *gin.Context) {
	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	status, err := h.debtService.RecomputeClientDebt(c.Request.Context(), middleware.GetTenantID(c), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

// UpdateAllDebtStatus godoc
// @Summary      Recompute the debt classification of every client with sales
// @Description  Per-client failures are counted, not fatal; the batch always runs to the end
// @Tags         clients
// @Produce      json
// @Success      200 {object} dto.Response{data=partnerapp.BatchResult}
// @Router       /clients/update-all-debt-status [post]
func (h *ClientHandler) UpdateAllDebtStatus(c *gin.Context) {
	result, err := h.debtService.RecomputeAllClients(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
