package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	confirmReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_reservation"
	deleteContractHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_contract"
	downloadContractHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/download_contract"
	generateContractHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/generate_contract"
	getContractHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_contract"
	getContractDetailsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_contract_details"
	getContractDetailsByReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_contract_details_by_reservation"
	listContractsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_contracts"
	listOwnerReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_owner_reservations"
	listReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_reservations"
	listStudentReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_student_reservations"
	regenerateContractHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/regenerate_contract"
	rejectReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/reject_reservation"
	updateContractDetailsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_contract_details"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/filestore"
	"github.com/m04kA/SMC-RentalService/internal/infra/render"
	contractRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/contract"
	contractDetailsRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/contractdetails"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/room"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
	contractDetailsService "github.com/m04kA/SMC-RentalService/internal/service/contractdetails"
	contractsService "github.com/m04kA/SMC-RentalService/internal/service/contracts"
	reservationsService "github.com/m04kA/SMC-RentalService/internal/service/reservations"
	confirmReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_reservation"
	createReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("RENTAL_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Без метрик обертка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	contractDetailsRepository := contractDetailsRepo.NewRepository(wrappedDB)
	contractRepository := contractRepo.NewRepository(wrappedDB)

	// Хранилище и генератор документов
	documentStore, err := filestore.New(cfg.Documents.Dir)
	if err != nil {
		log.Fatal("Failed to initialize document store: %v", err)
	}
	renderer := render.NewPDFRenderer(render.Options{
		Currency: cfg.Documents.Currency,
		Compress: cfg.Documents.Compress,
	})
	log.Info("Document store initialized (dir=%s, currency=%s)", documentStore.Dir(), cfg.Documents.Currency)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		roomRepository,
		txMgr,
		log,
	)
	contractDetailsSvc := contractDetailsService.NewService(
		contractDetailsRepository,
		txMgr,
		log,
	)
	contractSvc := contractsService.NewService(
		contractRepository,
		contractDetailsRepository,
		renderer,
		documentStore,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		txMgr,
		log,
	)
	confirmReservationUseCase := confirmReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		contractDetailsRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	confirmReservation := confirmReservationHandler.NewHandler(confirmReservationUseCase, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	listStudentReservations := listStudentReservationsHandler.NewHandler(reservationSvc, log)
	listOwnerReservations := listOwnerReservationsHandler.NewHandler(reservationSvc, log)
	getContractDetails := getContractDetailsHandler.NewHandler(contractDetailsSvc, log)
	getContractDetailsByReservation := getContractDetailsByReservationHandler.NewHandler(contractDetailsSvc, log)
	updateContractDetails := updateContractDetailsHandler.NewHandler(contractDetailsSvc, log)
	generateContract := generateContractHandler.NewHandler(contractSvc, log)
	regenerateContract := regenerateContractHandler.NewHandler(contractSvc, log)
	listContracts := listContractsHandler.NewHandler(contractSvc, log)
	getContract := getContractHandler.NewHandler(contractSvc, log)
	downloadContract := downloadContractHandler.NewHandler(contractSvc, log)
	deleteContract := deleteContractHandler.NewHandler(contractSvc, log)

	authenticator := middleware.NewAuthenticator(
		userRepository,
		userRepo.ErrUserNotFound,
		middleware.AuthConfig{
			Secret:   cfg.Auth.JWTSecret,
			Issuer:   cfg.Auth.Issuer,
			CacheTTL: time.Duration(cfg.Auth.UserCacheTTLSec) * time.Second,
		},
		log,
	)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTLSec)*time.Second).Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			log.Error("GET /health - Database is unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Сгенерированные документы раздаются публично, как в document_url
	r.PathPrefix(domain.DocumentsURLPrefix).Handler(
		http.StripPrefix(domain.DocumentsURLPrefix, noDirectoryListing(http.FileServer(http.Dir(documentStore.Dir())))),
	).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authenticator.Auth)

	// --- Брони ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/student/{studentId}", listStudentReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/owner/{ownerId}", listOwnerReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPost)

	// --- Условия договора ---
	protected.HandleFunc("/contract_details/by-reservation/{reservationId}",
		getContractDetailsByReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/contract_details/{detailsId}", getContractDetails.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/contract_details/{detailsId}", updateContractDetails.Handle).Methods(http.MethodPut)

	// --- Документы договоров ---
	protected.HandleFunc("/contracts", listContracts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/contracts/generate-from-details/{detailsId}", generateContract.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/contracts/{contractId}", getContract.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/contracts/{contractId}", deleteContract.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/contracts/{contractId}/regenerate-from-details", regenerateContract.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/contracts/{contractId}/download", downloadContract.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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

// noDirectoryListing запрещает просмотр содержимого каталога документов
func noDirectoryListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
