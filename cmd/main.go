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

	clearNotificationHandler "github.com/strandly/booking-service/internal/api/handlers/clear_notification"
	createBookingHandler "github.com/strandly/booking-service/internal/api/handlers/create_booking"
	createReviewHandler "github.com/strandly/booking-service/internal/api/handlers/create_review"
	getAvailabilityHandler "github.com/strandly/booking-service/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/strandly/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/strandly/booking-service/internal/api/handlers/get_booking"
	getStylistReviewsHandler "github.com/strandly/booking-service/internal/api/handlers/get_stylist_reviews"
	getUserBookingsHandler "github.com/strandly/booking-service/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/strandly/booking-service/internal/api/handlers/reschedule_booking"
	updateAvailabilityHandler "github.com/strandly/booking-service/internal/api/handlers/update_availability"
	updateBookingStatusHandler "github.com/strandly/booking-service/internal/api/handlers/update_booking_status"
	"github.com/strandly/booking-service/internal/api/middleware"
	"github.com/strandly/booking-service/internal/config"
	availabilityRepo "github.com/strandly/booking-service/internal/infra/storage/availability"
	bookingRepo "github.com/strandly/booking-service/internal/infra/storage/booking"
	reviewRepo "github.com/strandly/booking-service/internal/infra/storage/review"
	stylistRepo "github.com/strandly/booking-service/internal/infra/storage/stylist"
	profileServiceClient "github.com/strandly/booking-service/internal/integrations/profileservice"
	availabilityService "github.com/strandly/booking-service/internal/service/availability"
	bookingsService "github.com/strandly/booking-service/internal/service/bookings"
	reviewsService "github.com/strandly/booking-service/internal/service/reviews"
	createBookingUC "github.com/strandly/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/strandly/booking-service/internal/usecase/get_available_slots"
	"github.com/strandly/booking-service/internal/worker/completer"
	"github.com/strandly/booking-service/pkg/dbmetrics"
	"github.com/strandly/booking-service/pkg/logger"
	"github.com/strandly/booking-service/pkg/metrics"
	"github.com/strandly/booking-service/pkg/simpletxmanager"
	"github.com/strandly/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")
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

	// Инициализируем клиент ProfileService
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		stylistRepository      *stylistRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		bookingRepository      *bookingRepo.Repository
		reviewRepository       *reviewRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		stylistRepository = stylistRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		stylistRepository = stylistRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		reviewRepository = reviewRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		stylistRepository,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		stylistRepository,
		log,
	)
	reviewSvc := reviewsService.NewService(
		reviewRepository,
		bookingRepository,
		stylistRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		stylistRepository,
		availabilityRepository,
		cfg.Slots.DefaultDaysForward,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		stylistRepository,
		profileClient,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	clearNotification := clearNotificationHandler.NewHandler(bookingSvc, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	getStylistReviews := getStylistReviewsHandler.NewHandler(reviewSvc, log)

	// Запускаем фоновый воркер завершения бронирований
	var completerWorker *completer.Worker
	if cfg.Worker.Enabled {
		completerWorker = completer.NewWorker(bookingRepository, cfg.Worker.IntervalMinutes, log)
		if err := completerWorker.Start(); err != nil {
			log.Fatal("Failed to start completer worker: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные для записи слоты стилиста
	api.HandleFunc("/stylists/{stylistId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание стилиста
	api.HandleFunc("/stylists/{stylistId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Отзывы стилиста
	api.HandleFunc("/stylists/{stylistId}/reviews",
		getStylistReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Расписание ---
	// Замена недельного расписания (только владелец профиля)
	protected.HandleFunc("/stylists/{stylistId}/availability",
		updateAvailability.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Перенос бронирования: предложение и ответ
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.HandlePropose).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reschedule/respond", rescheduleBooking.HandleRespond).Methods(http.MethodPost)

	// Сброс флага уведомления
	protected.HandleFunc("/bookings/{bookingId}/notifications/clear", clearNotification.Handle).Methods(http.MethodPost)

	// Отзыв на завершенное бронирование
	protected.HandleFunc("/bookings/{bookingId}/review", createReview.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновый воркер
	if completerWorker != nil {
		completerWorker.Stop()
	}

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
