package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/soulconnect/patient-api/config"
	"github.com/soulconnect/patient-api/pkg/logger"
	"github.com/soulconnect/patient-api/pkg/messaging/redis"
	"github.com/soulconnect/patient-api/pkg/metrics"
	"github.com/soulconnect/patient-api/pkg/worker"

	appointmentHandler "github.com/soulconnect/patient-api/internal/handler/appointment"
	appointmentTypeHandler "github.com/soulconnect/patient-api/internal/handler/appointmenttype"
	patientHandler "github.com/soulconnect/patient-api/internal/handler/patient"
	"github.com/soulconnect/patient-api/internal/middleware"
	"github.com/soulconnect/patient-api/internal/repository/postgres"
	"github.com/soulconnect/patient-api/internal/router"
	appointmentService "github.com/soulconnect/patient-api/internal/service/appointment"
	appointmentTypeService "github.com/soulconnect/patient-api/internal/service/appointmenttype"
	patientService "github.com/soulconnect/patient-api/internal/service/patient"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	appointmentTypeRepo := postgres.NewAppointmentTypeRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo)
	appointmentTypeSvc := appointmentTypeService.NewService(appointmentTypeRepo, cfg.Cache.AppointmentTypesTTL)

	// Handlers
	patientH := patientHandler.NewHandler(patientSvc, outboxRepo)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, outboxRepo)
	appointmentTypeH := appointmentTypeHandler.NewHandler(appointmentTypeSvc)

	m := metrics.NewMetrics("patient_api")

	cors := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		cors.AllowOrigins = cfg.Security.AllowedOrigins
	}

	r := router.NewRouter(router.Config{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORS:             cors,
	}, m, patientH, appointmentH, appointmentTypeH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	if cfg.Outbox.Enabled {
		broker, err := redis.NewBroker(redis.Config{
			URL:      cfg.Redis.URL,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:       cfg.Outbox.BatchSize,
			PollInterval:    cfg.Outbox.PollInterval,
			RetryAttempts:   cfg.Outbox.RetryAttempts,
			RetryDelay:      cfg.Outbox.RetryDelay,
			RetentionPeriod: cfg.Outbox.RetentionPeriod,
			CleanupInterval: cfg.Outbox.CleanupInterval,
		}, appLogger, m)
		go processor.Start(workerCtx)
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
