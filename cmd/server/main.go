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
	auditapp "github.com/khata/backend/internal/application/audit"
	ledgerapp "github.com/khata/backend/internal/application/ledger"
	partnerapp "github.com/khata/backend/internal/application/partner"
	printingapp "github.com/khata/backend/internal/application/printing"
	reportapp "github.com/khata/backend/internal/application/report"
	"github.com/khata/backend/internal/domain/report"
	"github.com/khata/backend/internal/infrastructure/cache"
	"github.com/khata/backend/internal/infrastructure/config"
	"github.com/khata/backend/internal/infrastructure/logger"
	"github.com/khata/backend/internal/infrastructure/persistence"
	"github.com/khata/backend/internal/infrastructure/printing"
	"github.com/khata/backend/internal/infrastructure/storage"
	"github.com/khata/backend/internal/infrastructure/telemetry"
	"github.com/khata/backend/internal/interfaces/http/handler"
	"github.com/khata/backend/internal/interfaces/http/middleware"
	"github.com/khata/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/khata/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Khata Backend API
//	@version		1.0
//	@description	Wholesale cloth ledger: bills, memo settlement, part payment credits and reports

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	// Telemetry: traces, metrics, log export and continuous profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdown(log, "logger provider", loggerProvider.Shutdown)
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Telemetry.LogsLevel))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServerAddr,
		ApplicationName: cfg.Telemetry.ServiceName,
		BasicAuthUser:   cfg.Telemetry.ProfilingAuthUser,
		BasicAuthPass:   cfg.Telemetry.ProfilingAuthPass,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if cfg.Telemetry.SpanProfilesEnabled && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting khata backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Name cache
	nameCache, err := cache.NewNameCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to create name cache", zap.Error(err))
	}
	defer func() { _ = nameCache.Close() }()

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	bankRepo := persistence.NewGormBankRepository(db.DB)
	ledgerRepos := persistence.NewLedgerRepositories(db.DB)
	uow := persistence.NewGormUnitOfWork(db)
	names := cache.NewNameResolver(nameCache, supplierRepo, partyRepo, cfg.Redis.NameTTL, log)

	ledgerMetrics, err := telemetry.NewLedgerMetrics(meterProvider.Meter("khata/ledger"))
	if err != nil {
		log.Fatal("Failed to create ledger metrics", zap.Error(err))
	}

	// Application services
	supplierService := partnerapp.NewSupplierService(supplierRepo, names)
	partyService := partnerapp.NewPartyService(partyRepo, names)
	bankService := partnerapp.NewBankService(bankRepo)
	auditService := auditapp.NewAuditService(ledgerRepos.Audit)
	billService := ledgerapp.NewBillService(ledgerRepos.Bills, uow, ledgerMetrics)
	settlementService := ledgerapp.NewSettlementService(ledgerRepos.Memos, ledgerRepos.Parts, uow, ledgerMetrics)
	partPaymentService := ledgerapp.NewPartPaymentService(ledgerRepos.Parts)
	orderFormService := ledgerapp.NewOrderFormService(ledgerRepos.OrderForms)
	reportService := reportapp.NewReportService(
		persistence.NewGormReportSource(db.DB),
		persistence.NewGormEfficiencyRepository(db.DB),
		names, supplierRepo, partyRepo, ledgerMetrics,
		reportapp.Options{
			Buckets:        report.Buckets{Low: cfg.Report.BucketLow, High: cfg.Report.BucketHigh},
			SmartSelection: cfg.Report.SmartSelection,
		},
	)

	// PDF rendering and archiving
	var printer printingapp.Printer
	if cfg.Printing.Enabled {
		renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			RemoteURL:      cfg.Printing.RemoteURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to create PDF renderer", zap.Error(err))
		}
		defer func() { _ = renderer.Close() }()
		printer = printing.NewReportPrinter(nil, renderer, log)
		log.Info("PDF rendering enabled", zap.Bool("remote", cfg.Printing.RemoteURL != ""))
	}
	var archive printingapp.Archive
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3ReportArchive(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiry),
		)
		if err != nil {
			log.Fatal("Failed to create report archive", zap.Error(err))
		}
		if err := s3Archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare report archive bucket", zap.Error(err))
		}
		archive = s3Archive
		log.Info("Report archive enabled", zap.String("bucket", s3Archive.GetBucket()))
	}
	printService := printingapp.NewPrintService(reportService, printer, archive, cfg.Storage.PresignExpiry, log)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter("khata/http"))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		httpMetrics,
		middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()),
		middleware.CORSWithConfig(corsConfig),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	checks := map[string]handler.Pinger{"database": db}
	if pinger, ok := nameCache.(handler.Pinger); ok {
		checks["redis"] = pinger
	}
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, checks)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	handlers := &handler.Handlers{
		Suppliers:    handler.NewSupplierHandler(supplierService),
		Parties:      handler.NewPartyHandler(partyService),
		Bills:        handler.NewBillHandler(billService),
		Memos:        handler.NewMemoHandler(settlementService),
		PartPayments: handler.NewPartPaymentHandler(partPaymentService),
		OrderForms:   handler.NewOrderFormHandler(orderFormService),
		Reports:      handler.NewReportHandler(reportService, printService),
		Banks:        handler.NewBankHandler(bankService),
		Audit:        handler.NewAuditHandler(auditService),
	}
	pdfLimiter := middleware.NewRateLimiter(cfg.Printing.RateLimit, time.Minute)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handlers.Groups(middleware.RateLimit(pdfLimiter))...).Register(systemRoutes)
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// shutdown runs fn with a bounded context and logs its failure
func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
