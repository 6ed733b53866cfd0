package persistence

import (
	"strings"

	"github.com/gestor/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// validateSortOrder normalizes the sort order to ASC or DESC, defaulting to DESC
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField checks the sort field against a whitelist. Ordering by an
// unlisted column falls back to the default so a caller can never inject SQL
// through OrderBy.
func validateSortField(field string, allowed map[string]bool, fallback string) string {
	trimmed := strings.TrimSpace(field)
	if trimmed != "" && allowed[trimmed] {
		return trimmed
	}
	return fallback
}

var clientSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"debt_status":        true,
	"overdue_amount":     true,
	"first_overdue_date": true,
}

var productSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"selling_price": true,
	"stock":         true,
}

var saleSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"total_price": true,
}

var entrySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"entry_date": true,
	"amount":     true,
	"category":   true,
}

var transferSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"transfer_date": true,
	"amount":        true,
	"status":        true,
}

// applyPagination applies page/size and validated ordering to a query
func applyPagination(query *gorm.DB, filter shared.Filter, allowedSort map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := validateSortField(filter.OrderBy, allowedSort, "created_at")
	return query.Order(orderBy + " " + validateSortOrder(filter.OrderDir))
}
