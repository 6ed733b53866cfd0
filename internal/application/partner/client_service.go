package partner

import (
	"context"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientService manages the client registry
type ClientService struct {
	clientRepo partner.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo partner.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, logger: logger}
}

// CreateClient registers a new client for the tenant
func (s *ClientService) CreateClient(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	clientType := partner.ClientType(req.Type)
	if req.Type == "" {
		clientType = partner.ClientTypeIndividual
	}

	client, err := partner.NewClient(tenantID, req.BranchID, req.Name, clientType)
	if err != nil {
		return nil, err
	}
	client.SetContact(req.Email, req.Phone, req.Document, req.Address)

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client registered",
		zap.String("tenant_id", tenantID.String()),
		zap.String("client_id", client.ID.String()))

	resp := ToClientResponse(client)
	return &resp, nil
}

// GetClient returns a single client by ID
func (s *ClientService) GetClient(ctx context.Context, tenantID, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// UpdateClient updates a client's contact data
func (s *ClientService) UpdateClient(ctx context.Context, tenantID, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	client.SetContact(req.Email, req.Phone, req.Document, req.Address)
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// ListClients returns a page of clients for the tenant
func (s *ClientService) ListClients(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ClientResponse], error) {
	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ClientResponse, len(clients))
	for i := range clients {
		items[i] = ToClientResponse(&clients[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListOverdueClients returns every client whose debt status is not regular
func (s *ClientService) ListOverdueClients(ctx context.Context, tenantID uuid.UUID) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindOverdue(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]ClientResponse, len(clients))
	for i := range clients {
		items[i] = ToClientResponse(&clients[i])
	}
	return items, nil
}
