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

	cancelAppointmentHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/create_appointment"
	deleteScheduleRuleHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/delete_schedule_rule"
	getAppointmentHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_client_appointments"
	getScheduleHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_schedule"
	getTherapistAppointmentsHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_therapist_appointments"
	rescheduleAppointmentHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/update_appointment_status"
	updateScheduleHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/update_schedule"
	"github.com/m04kA/TMS-BookingService/internal/api/middleware"
	"github.com/m04kA/TMS-BookingService/internal/config"
	appointmentRepo "github.com/m04kA/TMS-BookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/TMS-BookingService/internal/infra/storage/availability"
	catalogServiceClient "github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	appointmentsService "github.com/m04kA/TMS-BookingService/internal/service/appointments"
	scheduleService "github.com/m04kA/TMS-BookingService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/TMS-BookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/TMS-BookingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/TMS-BookingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/TMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TMS-BookingService/pkg/logger"
	"github.com/m04kA/TMS-BookingService/pkg/metrics"
	"github.com/m04kA/TMS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/TMS-BookingService/pkg/txmanager"
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

	log.Info("Starting TMS-BookingService...")
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

	// Инициализируем клиента каталога (терапевты и услуги)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		availabilityRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		catalogClient,
		txMgr,
		createAppointmentUC.Options{
			SlotStepMinutes:    cfg.Booking.SlotStepMinutes,
			MinNoticeMinutes:   cfg.Booking.MinNoticeMinutes,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		catalogClient,
		getAvailableSlotsUC.Options{
			SlotStepMinutes:    cfg.Booking.SlotStepMinutes,
			MinNoticeMinutes:   cfg.Booking.MinNoticeMinutes,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
		},
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		txMgr,
		rescheduleAppointmentUC.Options{
			SlotStepMinutes:    cfg.Booking.SlotStepMinutes,
			MinNoticeMinutes:   cfg.Booking.MinNoticeMinutes,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getTherapistAppointments := getTherapistAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	deleteScheduleRule := deleteScheduleRuleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Получение доступных слотов для записи
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/therapists/{therapistId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание терапевта
	api.HandleFunc("/therapists/{therapistId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи на другой слот
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса записи (для персонала)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для терапевтов) ---
	// Записи терапевта за период
	protected.HandleFunc("/therapists/{therapistId}/appointments", getTherapistAppointments.Handle).Methods(http.MethodGet)

	// Создание/обновление правила доступности
	protected.HandleFunc("/therapists/{therapistId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Удаление правила доступности
	protected.HandleFunc("/therapists/{therapistId}/schedule/{ruleId}", deleteScheduleRule.Handle).Methods(http.MethodDelete)

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

	log.Info("Server stopped gracefully")
}
