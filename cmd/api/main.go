package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/retailhub-api/internal/application/service"
	"github.com/sangkips/retailhub-api/internal/config"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/internal/infrastructure/cartstore"
	"github.com/sangkips/retailhub-api/internal/infrastructure/database"
	"github.com/sangkips/retailhub-api/internal/infrastructure/events"
	"github.com/sangkips/retailhub-api/internal/infrastructure/repository"
	"github.com/sangkips/retailhub-api/internal/presentation/http/handler"
	"github.com/sangkips/retailhub-api/internal/presentation/http/middleware"
	"github.com/sangkips/retailhub-api/internal/presentation/http/routes"
	"github.com/sangkips/retailhub-api/pkg/logger"
	"github.com/sangkips/retailhub-api/pkg/metrics"
	"github.com/sangkips/retailhub-api/pkg/printer"
	"github.com/sangkips/retailhub-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	shutdownTimeout    = 15 * time.Second
	idempotencySweep   = time.Hour
	metricsNamespace   = "retailhub"
	storagePingTimeout = 3 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Must(cfg.App.Env, cfg.App.Debug)
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin, log); err != nil {
		log.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	m := metrics.New(metricsNamespace)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	stockRepo := repository.NewStockRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	backupRepo := repository.NewBackupRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	categoryRepo := repository.NewCRUDRepository[entity.Category](db)
	unitRepo := repository.NewCRUDRepository[entity.Unit](db)
	variantRepo := repository.NewCRUDRepository[entity.Variant](db)
	supplierRepo := repository.NewCRUDRepository[entity.Supplier](db)
	employeeRepo := repository.NewCRUDRepository[entity.Employee](db)
	payrollRepo := repository.NewCRUDRepository[entity.Payroll](db)
	accountRepo := repository.NewCRUDRepository[entity.BankAccount](db)
	subscriptionRepo := repository.NewCRUDRepository[entity.Subscription](db)

	carts := openCartStorage(cfg, log)
	publisher := openPublisher(cfg, log)
	defer publisher.Close()

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn("failed to initialize printer, receipts will not be printed", zap.Error(err))
		thermalPrinter = printer.NewMemoryPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, log)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, categoryRepo, unitRepo)
	cartService := service.NewCartService(carts, productRepo, log)
	checkoutService := service.NewCheckoutService(cartService, saleRepo, publisher, m, log, cfg.Checkout.TaxRate)
	saleService := service.NewSaleService(saleRepo)
	inventoryService := service.NewInventoryService(stockRepo, productRepo, log)
	reportService := service.NewReportService(saleRepo, stockRepo, payrollRepo, employeeRepo, accountRepo)
	exportService := service.NewExportService(m, log)
	backupService := service.NewBackupService(backupRepo, log)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo)
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, service.PrinterOptions{
		Header: entity.ReceiptHeader{
			StoreName: cfg.Store.Name,
			Address:   cfg.Store.Address,
			Phone:     cfg.Store.Phone,
			Footer:    cfg.Store.Footer,
		},
		TaxLabel:   checkoutService.TaxLabel(),
		Width:      cfg.Printer.Width,
		OpenDrawer: cfg.Printer.OpenDrawer,
	}, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService, exportService),
		Cart:      handler.NewCartHandler(cartService, checkoutService),
		Sale:      handler.NewSaleHandler(checkoutService, saleService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Report:    handler.NewReportHandler(reportService, exportService),
		Backup:    handler.NewBackupHandler(backupService, log),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
		User:      handler.NewUserHandler(userService),

		Categories:    handler.NewCRUDHandler(service.NewCRUDService(categoryRepo, "Category"), exportService),
		Units:         handler.NewCRUDHandler(service.NewCRUDService(unitRepo, "Unit"), exportService),
		Variants:      handler.NewCRUDHandler(service.NewCRUDService(variantRepo, "Variant"), exportService),
		Suppliers:     handler.NewCRUDHandler(service.NewCRUDService(supplierRepo, "Supplier"), exportService),
		Employees:     handler.NewCRUDHandler(service.NewCRUDService(employeeRepo, "Employee"), exportService),
		Payrolls:      handler.NewCRUDHandler(service.NewCRUDService(payrollRepo, "Payroll"), exportService),
		BankAccounts:  handler.NewCRUDHandler(service.NewCRUDService(accountRepo, "Bank account"), exportService),
		Subscriptions: handler.NewCRUDHandler(service.NewCRUDService(subscriptionRepo, "Subscription"), exportService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   time.Duration(cfg.RateLimit.Duration) * time.Second,
	})
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Metrics:         m,
		Events:          publisher,
		Log:             log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepIdempotencyKeys(ctx, idempotencyRepo, log)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("db_driver", cfg.Database.Driver),
			zap.String("printer", thermalPrinter.Kind()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.Driver == "memory" {
		log.Warn("using in-memory database, data is lost on restart")
		return database.NewMemoryDB()
	}
	return database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
}

// openCartStorage uses Redis when configured and reachable, memory otherwise
func openCartStorage(cfg *config.Config, log *zap.Logger) domainRepo.CartStorage {
	if cfg.Redis.Addr == "" {
		log.Info("cart storage: memory")
		return cartstore.NewMemoryStorage()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	storage := cartstore.NewRedisStorage(client, cfg.Redis.CartTTL)

	ctx, cancel := context.WithTimeout(context.Background(), storagePingTimeout)
	defer cancel()
	if err := storage.Ping(ctx); err != nil {
		log.Warn("redis unreachable, falling back to memory cart storage", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = client.Close()
		return cartstore.NewMemoryStorage()
	}

	log.Info("cart storage: redis", zap.String("addr", cfg.Redis.Addr))
	return storage
}

func openPublisher(cfg *config.Config, log *zap.Logger) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("sale events: disabled (no kafka brokers)")
		return events.NewMemoryPublisher()
	}
	log.Info("sale events: kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	return events.NewKafkaPublisher(events.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), log)
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(idempotencySweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.Purge(ctx, time.Now())
			if err != nil {
				log.Warn("failed to delete expired idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("deleted expired idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
