package middleware

import (
	"errors"
	"net/http"

	"github.com/gestor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errHeaderMissing = errors.New("identity header missing")

// Gin context keys populated by RequireIdentity
const (
	ContextUserID   = "user_id"
	ContextTenantID = "tenant_id"
	ContextBranchID = "branch_id"
)

// Identity headers. Authentication itself happens upstream (gateway or
// reverse proxy); the backend trusts these headers and only checks shape.
const (
	HeaderUserID   = "X-User-ID"
	HeaderTenantID = "X-Company-ID"
	HeaderBranchID = "X-Branch-ID"
)

// RequireIdentity rejects requests that do not carry a valid user and
// company identity. The branch header is optional; endpoints that need a
// branch fall back to uuid.Nil and validate at the application layer.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseHeaderUUID(c, HeaderUserID)
		if err != nil {
			abortUnauthorized(c, "Missing or invalid "+HeaderUserID+" header")
			return
		}

		tenantID, err := parseHeaderUUID(c, HeaderTenantID)
		if err != nil {
			abortUnauthorized(c, "Missing or invalid "+HeaderTenantID+" header")
			return
		}

		branchID := uuid.Nil
		if raw := c.GetHeader(HeaderBranchID); raw != "" {
			branchID, err = uuid.Parse(raw)
			if err != nil {
				abortUnauthorized(c, "Invalid "+HeaderBranchID+" header")
				return
			}
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextTenantID, tenantID)
		c.Set(ContextBranchID, branchID)
		c.Next()
	}
}

func parseHeaderUUID(c *gin.Context, header string) (uuid.UUID, error) {
	raw := c.GetHeader(header)
	if raw == "" {
		return uuid.Nil, errHeaderMissing
	}
	return uuid.Parse(raw)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// GetUserID returns the authenticated user ID stored by RequireIdentity
func GetUserID(c *gin.Context) uuid.UUID {
	return contextUUID(c, ContextUserID)
}

// GetTenantID returns the company scope stored by RequireIdentity
func GetTenantID(c *gin.Context) uuid.UUID {
	return contextUUID(c, ContextTenantID)
}

// GetBranchID returns the branch scope, or uuid.Nil when the request did
// not carry one
func GetBranchID(c *gin.Context) uuid.UUID {
	return contextUUID(c, ContextBranchID)
}

func contextUUID(c *gin.Context, key string) uuid.UUID {
	if v, ok := c.Get(key); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
