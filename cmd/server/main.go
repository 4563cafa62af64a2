package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/cache"
	"staffing-backend/internal/config"
	"staffing-backend/internal/database"
	"staffing-backend/internal/db"
	"staffing-backend/internal/generative"
	"staffing-backend/internal/handlers"
	"staffing-backend/internal/health"
	h "staffing-backend/internal/http"
	"staffing-backend/internal/middleware"
	"staffing-backend/internal/payments"
	"staffing-backend/internal/realtime"
	"staffing-backend/internal/repositories"
	"staffing-backend/internal/repositories/memstore"
	"staffing-backend/internal/services"
	"staffing-backend/internal/sms"
	"staffing-backend/internal/storage"
	"staffing-backend/migrations"
	"staffing-backend/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Critical("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Critical("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	stores, dbPinger, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	// Redis is optional: without it the user cache is bypassed and the order feed stays local
	if err := cache.Init(cfg); err != nil {
		log.Warn("redis unavailable, continuing without cache", "error", err)
	}
	defer cache.Close()
	var redisHealth func(context.Context) bool
	if cache.GetClient() != nil {
		stores.Users = cache.NewCachedUserStore(stores.Users, cache.Redis())
		redisHealth = cache.IsHealthy
	}

	hub := realtime.NewHub(cache.GetClient(), log)
	go hub.Run(ctx)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpirationHours)

	// Object storage for invoice PDFs
	var objects services.ObjectStore
	s3Store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Warn("object storage unavailable, invoice pdfs will be rendered on demand", "error", err)
	} else if s3Store != nil {
		objects = s3Store
		log.Info("invoice pdf storage enabled", "bucket", cfg.Storage.Bucket)
	}

	gateway := payments.NewRazorpay(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	if !gateway.Configured() {
		log.Info("razorpay keys not set, online payments disabled")
	}

	// SMS: Fast2SMS when a key is configured, otherwise the mock that only logs
	var provider sms.Provider
	if cfg.SMS.APIKey != "" {
		provider = sms.NewFast2SMSService(sms.Fast2SMSConfig{
			APIKey:     cfg.SMS.APIKey,
			BaseURL:    cfg.SMS.BaseURL,
			Route:      cfg.SMS.Route,
			SenderID:   cfg.SMS.SenderID,
			TemplateID: cfg.SMS.TemplateID,
			CostPerSMS: cfg.SMS.CostPerSMS,
		})
	} else {
		log.Info("FAST2SMS_API_KEY not set, using mock sms provider")
		provider = sms.NewMockSMSService(log)
	}
	dispatcher := sms.NewDispatcher(provider, cfg.SMS.Rate, stores.SMSLogs, log)
	defer dispatcher.Wait()

	drafter := generative.NewDrafter(generative.NewGeminiClient(generative.Config{
		APIKey:  cfg.Generative.APIKey,
		Model:   cfg.Generative.Model,
		BaseURL: cfg.Generative.BaseURL,
		Rate:    cfg.Generative.Rate,
	}))

	// Services
	activityService := services.NewActivityService(stores.ActivityLogs, log)
	userService := services.NewUserService(stores.Users, jwtManager, activityService, log)
	staffService := services.NewStaffService(stores.Staff, stores.Users, activityService)
	availabilityService := services.NewAvailabilityService(stores.Availability, stores.Staff)
	orderService := services.NewOrderService(stores.Orders, stores.Users, stores.Staff, activityService, hub, log)
	assignmentService := services.NewAssignmentService(stores.Orders, stores.Staff, stores.Availability, activityService, hub, log)
	invoiceService := services.NewInvoiceService(stores.Invoices, stores.Orders, stores.Users, objects, gateway, activityService, hub, log)
	payoutService := services.NewPayoutService(stores.Payouts, stores.Orders, stores.Staff, activityService)
	firmService := services.NewFirmService(stores.Firms, activityService)
	inquiryService := services.NewInquiryService(stores.Inquiries, activityService, log)
	notificationService := services.NewNotificationService(stores.Orders, stores.Staff, stores.SMSLogs, dispatcher, activityService)
	draftingService := services.NewDraftingService(drafter, stores.Orders, stores.Invoices, stores.Firms, stores.Users, log)

	if err := userService.EnsureAdmin(ctx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminPhone, cfg.Bootstrap.AdminPassword); err != nil {
		return err
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, stores.Users)
	router := h.NewRouter(h.Handlers{
		Auth:         handlers.NewAuthHandler(userService, log),
		Users:        handlers.NewUserHandler(userService, log),
		Staff:        handlers.NewStaffHandler(staffService, payoutService, log),
		Availability: handlers.NewAvailabilityHandler(availabilityService, log),
		Orders:       handlers.NewOrderHandler(orderService, assignmentService, log),
		Invoices:     handlers.NewInvoiceHandler(invoiceService, log),
		Payouts:      handlers.NewPayoutHandler(payoutService, log),
		Firms:        handlers.NewFirmHandler(firmService, log),
		Inquiries:    handlers.NewInquiryHandler(inquiryService, log),
		SMS:          handlers.NewSMSHandler(notificationService, log),
		AI:           handlers.NewAIHandler(draftingService, log),
		ActivityLogs: handlers.NewActivityLogHandler(activityService, log),
		Health:       handlers.NewHealthHandler(health.NewHealthChecker(dbPinger, redisHealth)),
		OrderFeed:    hub.ServeWS,
	}, authMiddleware, middleware.NewRateLimiter(cfg.Server.PublicRateLimit))

	// Wrap with panic recovery, request logging and CORS
	handler := middleware.PanicRecovery(log)(middleware.RequestLogger(log)(middleware.NewCORS(cfg)(router)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", srv.Addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStores connects the configured backends. The availability registry moves to
// MongoDB when a URI is set.
func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (services.Stores, health.Pinger, func(), error) {
	var (
		stores  services.Stores
		pinger  health.Pinger
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Database.Driver {
	case "memory":
		log.Warn("using in-memory store, data is lost on restart")
		stores = memoryStores(memstore.New())
		pinger = health.PingFunc(func(context.Context) error { return nil })
	case "postgres", "":
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return stores, nil, nil, err
		}
		closers = append(closers, pool.Close)
		if err := database.NewMigrator(pool, migrations.FS, log).RunMigrations(ctx); err != nil {
			closeAll()
			return stores, nil, nil, err
		}
		stores = repositories.NewPostgresStores(pool)
		pinger = pool
	default:
		return stores, nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	mdb, err := db.ConnectMongo(ctx, cfg)
	if err != nil {
		closeAll()
		return stores, nil, nil, err
	}
	if mdb != nil {
		stores.Availability = repositories.NewMongoAvailabilityRepository(mdb)
		closers = append(closers, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mdb.Client().Disconnect(disconnectCtx)
		})
		log.Info("availability registry on mongodb", "database", cfg.Mongo.Database)
	}

	return stores, pinger, closeAll, nil
}

func memoryStores(m *memstore.Store) services.Stores {
	return services.Stores{
		Users:        m.Users(),
		Staff:        m.Staff(),
		Orders:       m.Orders(),
		Availability: m.Availability(),
		Invoices:     m.Invoices(),
		Payouts:      m.Payouts(),
		Firms:        m.Firms(),
		Inquiries:    m.Inquiries(),
		ActivityLogs: m.ActivityLogs(),
		SMSLogs:      m.SMSLogs(),
	}
}
