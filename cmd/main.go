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

	bookAppointmentHandler "github.com/dkoval85/appointment-service/internal/api/handlers/book_appointment"
	bookingSessionHandler "github.com/dkoval85/appointment-service/internal/api/handlers/booking_session"
	cancelAppointmentHandler "github.com/dkoval85/appointment-service/internal/api/handlers/cancel_appointment"
	changeStatusHandler "github.com/dkoval85/appointment-service/internal/api/handlers/change_status"
	checkAvailabilityHandler "github.com/dkoval85/appointment-service/internal/api/handlers/check_availability"
	createAppointmentHandler "github.com/dkoval85/appointment-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/dkoval85/appointment-service/internal/api/handlers/get_appointment"
	getAvailableTimesHandler "github.com/dkoval85/appointment-service/internal/api/handlers/get_available_times"
	getClientAppointmentsHandler "github.com/dkoval85/appointment-service/internal/api/handlers/get_client_appointments"
	getDayAvailabilityHandler "github.com/dkoval85/appointment-service/internal/api/handlers/get_day_availability"
	getEmployeeAppointmentsHandler "github.com/dkoval85/appointment-service/internal/api/handlers/get_employee_appointments"
	getScheduleConfigHandler "github.com/dkoval85/appointment-service/internal/api/handlers/get_schedule_config"
	updateAppointmentHandler "github.com/dkoval85/appointment-service/internal/api/handlers/update_appointment"
	updateScheduleConfigHandler "github.com/dkoval85/appointment-service/internal/api/handlers/update_schedule_config"
	"github.com/dkoval85/appointment-service/internal/api/middleware"
	"github.com/dkoval85/appointment-service/internal/booking"
	"github.com/dkoval85/appointment-service/internal/config"
	"github.com/dkoval85/appointment-service/internal/domain"
	appointmentRepo "github.com/dkoval85/appointment-service/internal/infra/storage/appointment"
	scheduleRepo "github.com/dkoval85/appointment-service/internal/infra/storage/schedule"
	clientServiceClient "github.com/dkoval85/appointment-service/internal/integrations/clientservice"
	directoryClient "github.com/dkoval85/appointment-service/internal/integrations/directory"
	appointmentsService "github.com/dkoval85/appointment-service/internal/service/appointments"
	scheduleService "github.com/dkoval85/appointment-service/internal/service/schedule"
	bookAppointmentUC "github.com/dkoval85/appointment-service/internal/usecase/book_appointment"
	checkAvailabilityUC "github.com/dkoval85/appointment-service/internal/usecase/check_availability"
	createAppointmentUC "github.com/dkoval85/appointment-service/internal/usecase/create_appointment"
	getAvailableTimesUC "github.com/dkoval85/appointment-service/internal/usecase/get_available_times"
	getDayAvailabilityUC "github.com/dkoval85/appointment-service/internal/usecase/get_day_availability"
	"github.com/dkoval85/appointment-service/pkg/dbmetrics"
	"github.com/dkoval85/appointment-service/pkg/logger"
	"github.com/dkoval85/appointment-service/pkg/metrics"
	"github.com/dkoval85/appointment-service/pkg/simpletxmanager"
	"github.com/dkoval85/appointment-service/pkg/txmanager"
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

	log.Info("Starting appointment-service...")
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

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	clientService := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (DirectoryService=%s timeout=%ds, ClientService=%s timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout, cfg.ClientService.URL, cfg.ClientService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		clientService,
		txMgr,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		txMgr,
		domain.AppointmentStatus(cfg.Booking.PublicStatus),
		log,
	)

	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		log,
	)

	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(appointmentRepository, log)

	// Инициализируем пошаговый сценарий публичной записи
	sessionStore := booking.NewStore(time.Duration(cfg.Booking.SessionTTLMinutes) * time.Minute)
	defer sessionStore.Close()

	bookingFlow := booking.NewFlow(
		sessionStore,
		bookAppointmentUseCase,
		getAvailableTimesUseCase,
		directory,
		log,
	)
	log.Info("Booking flow initialized (session TTL=%dm, public status=%s)",
		cfg.Booking.SessionTTLMinutes, cfg.Booking.PublicStatus)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	bookingSession := bookingSessionHandler.NewHandler(bookingFlow, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	changeStatus := changeStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getEmployeeAppointments := getEmployeeAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)

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

	// Доступные времена для публичной записи
	api.HandleFunc("/employees/{employeeId}/available-times",
		getAvailableTimes.Handle).Methods(http.MethodGet)

	// Публичная запись одним запросом
	api.HandleFunc("/book", bookAppointment.Handle).Methods(http.MethodPost)

	// Пошаговый сценарий публичной записи
	api.HandleFunc("/booking-sessions", bookingSession.HandleStart).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}", bookingSession.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/booking-sessions/{sessionId}/service", bookingSession.HandleSelectService).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/employee", bookingSession.HandleSelectEmployee).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/datetime", bookingSession.HandleSelectDateTime).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/contact", bookingSession.HandleSetContact).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/confirm", bookingSession.HandleConfirm).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи сотрудником
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи на другую дату/время
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Календарь сотрудника ---
	// Записи сотрудника с фильтрацией
	protected.HandleFunc("/employees/{employeeId}/appointments", getEmployeeAppointments.Handle).Methods(http.MethodGet)

	// Полная картина дня (свободные и занятые блоки)
	protected.HandleFunc("/employees/{employeeId}/day-availability", getDayAvailability.Handle).Methods(http.MethodGet)

	// Консультативная проверка интервала
	protected.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)

	// --- Клиенты ---
	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Конфигурация расписания ---
	protected.HandleFunc("/schedule-config", getScheduleConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

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
