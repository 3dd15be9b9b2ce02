package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookingservice "github.com/fp-experiences/booking-service"
	cancelBookingHandler "github.com/fp-experiences/booking-service/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/fp-experiences/booking-service/internal/api/handlers/check_in"
	convertHoldHandler "github.com/fp-experiences/booking-service/internal/api/handlers/convert_hold"
	createBookingHandler "github.com/fp-experiences/booking-service/internal/api/handlers/create_booking"
	createHoldHandler "github.com/fp-experiences/booking-service/internal/api/handlers/create_hold"
	getAvailableDatesHandler "github.com/fp-experiences/booking-service/internal/api/handlers/get_available_dates"
	getBookingHandler "github.com/fp-experiences/booking-service/internal/api/handlers/get_booking"
	getCancellationRulesHandler "github.com/fp-experiences/booking-service/internal/api/handlers/get_cancellation_rules"
	getCustomerBookingsHandler "github.com/fp-experiences/booking-service/internal/api/handlers/get_customer_bookings"
	getDayAvailabilityHandler "github.com/fp-experiences/booking-service/internal/api/handlers/get_day_availability"
	orderCancelledHandler "github.com/fp-experiences/booking-service/internal/api/handlers/order_cancelled"
	orderPaidHandler "github.com/fp-experiences/booking-service/internal/api/handlers/order_paid"
	releaseHoldHandler "github.com/fp-experiences/booking-service/internal/api/handlers/release_hold"
	"github.com/fp-experiences/booking-service/internal/api/middleware"
	"github.com/fp-experiences/booking-service/internal/app"
	"github.com/fp-experiences/booking-service/internal/config"
	"github.com/fp-experiences/booking-service/internal/events"
	bookingRepo "github.com/fp-experiences/booking-service/internal/infra/storage/booking"
	holdRepo "github.com/fp-experiences/booking-service/internal/infra/storage/hold"
	productRepo "github.com/fp-experiences/booking-service/internal/infra/storage/product"
	scheduleRepo "github.com/fp-experiences/booking-service/internal/infra/storage/schedule"
	"github.com/fp-experiences/booking-service/internal/integrations/availabilitycache"
	availabilityService "github.com/fp-experiences/booking-service/internal/service/availability"
	bookingsService "github.com/fp-experiences/booking-service/internal/service/bookings"
	holdsService "github.com/fp-experiences/booking-service/internal/service/holds"
	cancelOrderBookingsUC "github.com/fp-experiences/booking-service/internal/usecase/cancel_order_bookings"
	convertHoldUC "github.com/fp-experiences/booking-service/internal/usecase/convert_hold"
	createCustomerBookingUC "github.com/fp-experiences/booking-service/internal/usecase/create_customer_booking"
	createHoldUC "github.com/fp-experiences/booking-service/internal/usecase/create_hold"
	createOrderBookingsUC "github.com/fp-experiences/booking-service/internal/usecase/create_order_bookings"
	getAvailableDatesUC "github.com/fp-experiences/booking-service/internal/usecase/get_available_dates"
	getDayAvailabilityUC "github.com/fp-experiences/booking-service/internal/usecase/get_day_availability"
	"github.com/fp-experiences/booking-service/pkg/dbmetrics"
	"github.com/fp-experiences/booking-service/pkg/logger"
	"github.com/fp-experiences/booking-service/pkg/metrics"
	"github.com/fp-experiences/booking-service/pkg/simpletxmanager"
	"github.com/fp-experiences/booking-service/pkg/siteclock"
	"github.com/fp-experiences/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting experience-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Часы площадки: все расписания, cutoff и дедлайны отмены живут
	// в таймзоне площадки, не в таймзоне процесса
	clock, err := siteclock.New(cfg.Site.Timezone)
	if err != nil {
		log.Fatal("Failed to load site timezone: %v", err)
	}
	log.Info("Site timezone: %s", cfg.Site.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции схемы
	migrator, err := app.NewMigrator(db, bookingservice.Migrations)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database schema at version %d", version)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		holdRepository     *holdRepo.Repository
		productRepository  *productRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		productRepository = productRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		productRepository = productRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Шина доменных событий
	eventBus := events.NewBus(log)
	if cfg.Metrics.Enabled {
		eventBus.WithMetrics(metricsCollector)
	}

	// Redis кеш доступности (если включен)
	var dayCache getDayAvailabilityHandler.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		cache := availabilitycache.New(redisClient, time.Duration(cfg.Redis.TTLMinutes)*time.Minute, log)
		eventBus.Subscribe(cache)
		dayCache = cache
		log.Info("Availability cache enabled (redis=%s)", cfg.Redis.Addr)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		productRepository,
		scheduleRepository,
		bookingRepository,
		holdRepository,
		clock,
		cfg.Holds.Enabled,
		log,
	)

	holdsSvc := holdsService.NewService(
		holdRepository,
		clock,
		cfg.Holds.Enabled,
		cfg.Holds.TTLMinutes,
		log,
	)
	if cfg.Metrics.Enabled {
		holdsSvc.WithMetrics(metricsCollector)
	}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		productRepository,
		availabilitySvc,
		txMgr,
		eventBus,
		migrator,
		clock,
		log,
	)

	// Инициализируем use cases
	createCustomerBookingUseCase := createCustomerBookingUC.NewUseCase(
		bookingSvc,
		txMgr,
		eventBus,
		log,
	)
	createOrderBookingsUseCase := createOrderBookingsUC.NewUseCase(
		bookingSvc,
		bookingRepository,
		holdRepository,
		txMgr,
		eventBus,
		clock,
		log,
	)
	cancelOrderBookingsUseCase := cancelOrderBookingsUC.NewUseCase(
		bookingRepository,
		txMgr,
		eventBus,
		log,
	)
	createHoldUseCase := createHoldUC.NewUseCase(
		availabilitySvc,
		holdRepository,
		holdsSvc,
		txMgr,
		clock,
		log,
	)
	convertHoldUseCase := convertHoldUC.NewUseCase(
		bookingSvc,
		holdRepository,
		holdsSvc,
		txMgr,
		eventBus,
		clock,
		log,
	)
	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(availabilitySvc, clock, log)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(availabilitySvc, log)

	// Инициализируем handlers
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, dayCache, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createCustomerBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getCancellationRules := getCancellationRulesHandler.NewHandler(bookingSvc, log)
	checkIn := checkInHandler.NewHandler(bookingSvc, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(holdsSvc, clock, log)
	convertHold := convertHoldHandler.NewHandler(convertHoldUseCase, log)
	orderPaid := orderPaidHandler.NewHandler(createOrderBookingsUseCase, log)
	orderCancelled := orderCancelledHandler.NewHandler(cancelOrderBookingsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность продукта на дату
	api.HandleFunc("/products/{productId}/availability",
		getDayAvailability.Handle).Methods(http.MethodGet)

	// Сводка доступности по интервалу дат
	api.HandleFunc("/products/{productId}/available-dates",
		getAvailableDates.Handle).Methods(http.MethodGet)

	// Холды корзины: создаются и снимаются до аутентификации
	api.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)
	api.HandleFunc("/holds", releaseHold.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancellation-rules", getCancellationRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Оформление холда в бронирование
	protected.HandleFunc("/holds/convert", convertHold.Handle).Methods(http.MethodPost)

	// ============================================================
	// WEBHOOK ROUTES (требуют X-Webhook-Secret header)
	// ============================================================

	webhooks := api.PathPrefix("/webhooks").Subrouter()
	webhooks.Use(middleware.WebhookAuth(cfg.Webhooks.OrderSecret))

	webhooks.HandleFunc("/orders/paid", orderPaid.Handle).Methods(http.MethodPost)
	webhooks.HandleFunc("/orders/cancelled", orderCancelled.Handle).Methods(http.MethodPost)

	// Фоновый свипер просроченных холдов
	sweeper := app.NewSweeper(holdsSvc, time.Duration(cfg.Holds.SweepIntervalMinutes)*time.Minute, log)
	sweeper.Start(context.Background())
	defer sweeper.Stop()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
