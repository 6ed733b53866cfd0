package persistence

import (
	"testing"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/finance"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&partner.Client{},
		&catalog.Product{},
		&trade.Sale{},
		&trade.SaleItem{},
		&trade.Installment{},
		&finance.FinancialEntry{},
		&finance.MoneyTransfer{},
	)
	require.NoError(t, err)

	return db
}
