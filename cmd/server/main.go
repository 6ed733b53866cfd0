package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/gestor/backend/internal/application/catalog"
	financeapp "github.com/gestor/backend/internal/application/finance"
	partnerapp "github.com/gestor/backend/internal/application/partner"
	tradeapp "github.com/gestor/backend/internal/application/trade"
	"github.com/gestor/backend/internal/infrastructure/cache"
	"github.com/gestor/backend/internal/infrastructure/config"
	"github.com/gestor/backend/internal/infrastructure/logger"
	"github.com/gestor/backend/internal/infrastructure/persistence"
	"github.com/gestor/backend/internal/interfaces/http/handler"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gestor/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Gestor Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	invalidator := cache.NewInvalidator(cfg.Redis, log)

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	installmentRepo := persistence.NewGormInstallmentRepository(db.DB)
	entryRepo := persistence.NewGormFinancialEntryRepository(db.DB)
	transferRepo := persistence.NewGormMoneyTransferRepository(db.DB)
	checkoutScope := persistence.NewGormCheckoutScope(db.DB)

	// Application services
	clientService := partnerapp.NewClientService(clientRepo, log)
	debtService := partnerapp.NewDebtService(clientRepo, installmentRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	cartService := tradeapp.NewCartService(checkoutScope, saleRepo, installmentRepo, clientRepo, entryRepo, invalidator, log)
	installmentService := tradeapp.NewInstallmentService(installmentRepo, saleRepo, debtService, log)
	financeService := financeapp.NewFinanceService(entryRepo, log)
	transferService := financeapp.NewTransferService(transferRepo, entryRepo, invalidator, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	// Health stays outside the authenticated API group
	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/health", systemHandler.Health)

	api := router.NewRouter(engine, router.WithAPIVersion("v1"))
	api.Register(authenticated(handler.NewSaleHandler(cartService)))
	api.Register(authenticated(handler.NewInstallmentHandler(installmentService)))
	api.Register(authenticated(handler.NewClientHandler(clientService, debtService)))
	api.Register(authenticated(handler.NewProductHandler(productService)))
	api.Register(authenticated(handler.NewFinancialHandler(financeService)))
	api.Register(authenticated(handler.NewMoneyTransferHandler(transferService)))
	api.Register(systemHandler)
	api.Setup()

	if cfg.Debt.ReconcileEnabled {
		go runDebtReconciler(context.Background(), cfg.Debt.ReconcileInterval, clientRepo, debtService, log)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// authenticated wraps a registrar so its routes require identity headers
func authenticated(registrar router.RouteRegistrar) router.RouteRegistrar {
	return authenticatedRegistrar{inner: registrar}
}

type authenticatedRegistrar struct {
	inner router.RouteRegistrar
}

func (r authenticatedRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("", middleware.RequireIdentity())
	r.inner.RegisterRoutes(group)
}

// runDebtReconciler periodically recomputes the debt classification of every
// client, tenant by tenant. Overdue installments cross the 90 day line by
// time passing alone, so the stored status drifts without this sweep.
func runDebtReconciler(ctx context.Context, interval time.Duration, clientRepo *persistence.GormClientRepository, debtService *partnerapp.DebtService, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		tenantIDs, err := clientRepo.DistinctTenantIDs(ctx)
		if err != nil {
			log.Error("debt reconcile: tenant listing failed", zap.Error(err))
			continue
		}
		for _, tenantID := range tenantIDs {
			result, err := debtService.RecomputeAllClients(ctx, tenantID)
			if err != nil {
				log.Error("debt reconcile failed",
					zap.String("tenant_id", tenantID.String()),
					zap.Error(err))
				continue
			}
			log.Info("debt reconcile finished",
				zap.String("tenant_id", tenantID.String()),
				zap.Int("processed", result.Processed),
				zap.Int("updated", result.Updated),
				zap.Int("failed", result.Failed))
		}
	}
}
