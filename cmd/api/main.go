package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/logistics-api/internal/application/service"
	"github.com/sangkips/logistics-api/internal/config"
	"github.com/sangkips/logistics-api/internal/infrastructure/lock"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/request"
	"github.com/sangkips/logistics-api/internal/presentation/http/handler"
	"github.com/sangkips/logistics-api/internal/presentation/http/routes"
	"github.com/sangkips/logistics-api/pkg/logger"
	"github.com/sangkips/logistics-api/pkg/printer"
	"github.com/sangkips/logistics-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	request.RegisterJSONTagNames()

	repos, err := openRepositories(&cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}

	locker := newLocker(&cfg.Redis, log)

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize services
	sequenceService := service.NewSequenceService(repos.sequences, repos.transactor, cfg.Sequence.MaxAttempts, log)
	authService := service.NewAuthService(repos.staff, jwtManager)
	staffService := service.NewStaffService(repos.staff, sequenceService, log)
	customerService := service.NewCustomerService(repos.customers, sequenceService)
	categoryService := service.NewCategoryService(repos.categories, repos.items, repos.transactor, log)
	shipmentService := service.NewShipmentService(repos.shipments, repos.customers, repos.items, repos.transactor, log)
	receiptService := service.NewReceiptService(
		repos.receipts,
		repos.items,
		repos.customers,
		repos.categories,
		repos.shipments,
		sequenceService,
		repos.transactor,
		cfg.App.Location(),
		log,
	)
	dashboardService := service.NewDashboardService(repos.staff, repos.customers, repos.shipments, repos.receipts)
	exportService := service.NewExportService(receiptService, cfg.App.CompanyName)

	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.WithError(err).Warn("failed to initialize printer, printing disabled")
		thermalPrinter = printer.Disabled()
	}
	printerService := service.NewPrinterService(thermalPrinter, receiptService, cfg.Printer.Type, cfg.Printer.Width, cfg.App.CompanyName, log)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := staffService.EnsureAdmin(seedCtx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
		log.WithError(err).Warn("failed to seed admin account")
	}
	cancel()

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Staff:     handler.NewStaffHandler(staffService),
		Customer:  handler.NewCustomerHandler(customerService),
		Category:  handler.NewCategoryHandler(categoryService),
		Shipment:  handler.NewShipmentHandler(shipmentService),
		Receipt:   handler.NewReceiptHandler(receiptService, exportService, printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repos.idempotency,
		Locker:          locker,
		Log:             log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.WithFields(logrus.Fields{"port": port, "env": cfg.App.Env}).Infof("starting %s", cfg.App.Name)
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// newLocker shares idempotency locks through Redis when it is configured
// and reachable, and keeps them in-process otherwise.
func newLocker(cfg *config.RedisConfig, log *logrus.Logger) lock.Locker {
	if cfg.Address == "" {
		return lock.NewLocalLocker()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := lock.NewRedisClient(ctx, cfg.Address, cfg.Password, cfg.DB)
	if err != nil {
		log.WithError(err).WithField("address", cfg.Address).Warn("redis unavailable, using in-process locks")
		return lock.NewLocalLocker()
	}
	log.WithField("address", cfg.Address).Info("connected to Redis")
	return lock.NewRedisLocker(rdb)
}
