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

	cancelBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/check_availability"
	completeBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/create_booking"
	createCourtHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/create_court"
	createRecurringRuleHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/create_recurring_rule"
	deleteRecurringRuleHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/delete_recurring_rule"
	getBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_booking"
	getCourtHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_court"
	getRecurringRuleHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_recurring_rule"
	getSettingsHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/get_settings"
	listCourtBookingsHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/list_court_bookings"
	listCourtsHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/list_courts"
	listRecurringRulesHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/list_recurring_rules"
	processRecurringRuleHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/process_recurring_rule"
	reactivateBookingHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/reactivate_booking"
	updateCourtStatusHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/update_court_status"
	updatePaymentHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/update_payment"
	updateRuleStatusHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/update_rule_status"
	updateSettingsHandler "github.com/m04kA/SMC-CourtService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtService/internal/config"
	bookingRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/bookingslot"
	courtRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/court"
	paymentRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/payment"
	recurringRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/recurring"
	settingsRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CourtService/internal/jobs"
	bookingsService "github.com/m04kA/SMC-CourtService/internal/service/bookings"
	courtsService "github.com/m04kA/SMC-CourtService/internal/service/courts"
	recurringService "github.com/m04kA/SMC-CourtService/internal/service/recurring"
	settingsService "github.com/m04kA/SMC-CourtService/internal/service/settings"
	checkAvailabilityUC "github.com/m04kA/SMC-CourtService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-CourtService/internal/usecase/create_booking"
	processRecurringUC "github.com/m04kA/SMC-CourtService/internal/usecase/process_recurring"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/logger"
	"github.com/m04kA/SMC-CourtService/pkg/metrics"
	"github.com/m04kA/SMC-CourtService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CourtService/pkg/txmanager"
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

	log.Info("Starting SMC-CourtService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем репозитории (с метриками или без)
	var (
		courtRepository     *courtRepo.Repository
		bookingRepository   *bookingRepo.Repository
		slotRepository      *slotRepo.Repository
		paymentRepository   *paymentRepo.Repository
		recurringRepository *recurringRepo.Repository
		settingsRepository  *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		courtRepository = courtRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		recurringRepository = recurringRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		courtRepository = courtRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		recurringRepository = recurringRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		paymentRepository,
		txMgr,
		log,
	)
	courtSvc := courtsService.NewService(courtRepository, log)
	recurringSvc := recurringService.NewService(
		recurringRepository,
		courtRepository,
		bookingRepository,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(settingsRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		courtRepository,
		bookingRepository,
		slotRepository,
		paymentRepository,
		settingsRepository,
		txMgr,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		courtRepository,
		slotRepository,
		log,
	)

	processRecurringUseCase := processRecurringUC.NewUseCase(
		recurringRepository,
		createBookingUseCase,
		txMgr,
		cfg.Booking.DefaultRecurrenceMonths,
		log,
	)

	// Запускаем фоновый свипер просроченных бронирований
	sweeper := jobs.NewExpirySweeper(
		bookingRepository,
		slotRepository,
		txMgr,
		time.Duration(cfg.Booking.SweeperIntervalSeconds)*time.Second,
		log,
	)
	sweeper.Start(context.Background())

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	reactivateBooking := reactivateBookingHandler.NewHandler(bookingSvc, log)
	updatePayment := updatePaymentHandler.NewHandler(bookingSvc, log)
	listCourtBookings := listCourtBookingsHandler.NewHandler(bookingSvc, log)
	createCourt := createCourtHandler.NewHandler(courtSvc, log)
	getCourt := getCourtHandler.NewHandler(courtSvc, log)
	listCourts := listCourtsHandler.NewHandler(courtSvc, log)
	updateCourtStatus := updateCourtStatusHandler.NewHandler(courtSvc, log)
	createRecurringRule := createRecurringRuleHandler.NewHandler(recurringSvc, log)
	listRecurringRules := listRecurringRulesHandler.NewHandler(recurringSvc, log)
	getRecurringRule := getRecurringRuleHandler.NewHandler(recurringSvc, log)
	updateRuleStatus := updateRuleStatusHandler.NewHandler(recurringSvc, log)
	deleteRecurringRule := deleteRecurringRuleHandler.NewHandler(recurringSvc, log)
	processRecurringRule := processRecurringRuleHandler.NewHandler(processRecurringUseCase, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Корты и доступность слотов
	api.HandleFunc("/courts", listCourts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}", getCourt.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Настройки комплекса
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reactivate", reactivateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", updatePayment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/courts/{courtId}/bookings", listCourtBookings.Handle).Methods(http.MethodGet)

	// --- Корты (админ) ---
	protected.HandleFunc("/courts", createCourt.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/courts/{courtId}/status", updateCourtStatus.Handle).Methods(http.MethodPatch)

	// --- Правила повторяющихся бронирований ---
	protected.HandleFunc("/recurring-rules", createRecurringRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/recurring-rules", listRecurringRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/recurring-rules/{ruleId}", getRecurringRule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/recurring-rules/{ruleId}/process", processRecurringRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/recurring-rules/{ruleId}/status", updateRuleStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/recurring-rules/{ruleId}", deleteRecurringRule.Handle).Methods(http.MethodDelete)

	// --- Настройки комплекса (админ) ---
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновый свипер
	sweeper.Stop()

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

	log.Info("Server stopped gracefully")
}
