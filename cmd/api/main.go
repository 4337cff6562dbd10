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

	"github.com/nazaclinic/booking-api/internal/config"
	appointmentHandler "github.com/nazaclinic/booking-api/internal/handler/appointment"
	authHandler "github.com/nazaclinic/booking-api/internal/handler/auth"
	blockedslotHandler "github.com/nazaclinic/booking-api/internal/handler/blockedslot"
	healthHandler "github.com/nazaclinic/booking-api/internal/handler/health"
	patientHandler "github.com/nazaclinic/booking-api/internal/handler/patient"
	scheduleHandler "github.com/nazaclinic/booking-api/internal/handler/schedule"
	statsHandler "github.com/nazaclinic/booking-api/internal/handler/stats"
	"github.com/nazaclinic/booking-api/internal/middleware"
	"github.com/nazaclinic/booking-api/internal/repository/postgres"
	"github.com/nazaclinic/booking-api/internal/router"
	authService "github.com/nazaclinic/booking-api/internal/service/auth"
	availabilityService "github.com/nazaclinic/booking-api/internal/service/availability"
	bookingService "github.com/nazaclinic/booking-api/internal/service/booking"
	patientService "github.com/nazaclinic/booking-api/internal/service/patient"
	scheduleService "github.com/nazaclinic/booking-api/internal/service/schedule"
	statsService "github.com/nazaclinic/booking-api/internal/service/stats"
	"github.com/nazaclinic/booking-api/pkg/clock"
	"github.com/nazaclinic/booking-api/pkg/event"
	"github.com/nazaclinic/booking-api/pkg/logger"
	redisBroker "github.com/nazaclinic/booking-api/pkg/messaging/redis"
	"github.com/nazaclinic/booking-api/pkg/metrics"
	"github.com/nazaclinic/booking-api/pkg/security"
	"github.com/nazaclinic/booking-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	week, err := cfg.Clinic.WeeklySchedule()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid clinic schedule")
	}
	catalog, err := cfg.Clinic.TreatmentCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid treatment catalog")
	}

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	blockedSlotRepo := postgres.NewBlockedSlotRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	// Notification transport
	var notifier event.Notifier
	broker, err := redisBroker.NewBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, logger.For("broker"))
	if err != nil {
		// Notifications are best-effort; a missing broker degrades, not fails.
		log.Warn().Err(err).Msg("redis unavailable, booking events disabled")
		notifier = event.NewNoopNotifier()
	} else {
		defer broker.Close()
		notifier = event.NewBrokerNotifier(broker, logger.For("notifier"))
	}

	m := metrics.New("booking")
	clk := clock.New()

	// Services
	scheduleSvc, err := scheduleService.NewService(week, catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build schedule service")
	}
	availabilitySvc := availabilityService.NewService(appointmentRepo, blockedSlotRepo)
	bookingSvc := bookingService.NewService(scheduleSvc, availabilitySvc, appointmentRepo, blockedSlotRepo, notifier, m, clk)
	patientSvc := patientService.NewService(patientRepo)
	statsSvc := statsService.NewService(appointmentRepo, patientRepo, scheduleSvc, clk)
	authSvc := authService.NewService(adminRepo, security.NewBcryptHasher(cfg.Auth.BcryptCost), authService.Config{
		Secret:      cfg.Auth.Secret,
		ExpiryHours: cfg.Auth.ExpiryHours,
	})

	// Handlers
	authMw := middleware.NewAuthMiddleware(authSvc)
	r := router.New(
		router.Config{
			RateLimit: rate.Limit(100),
			RateBurst: 200,
			CORS:      middleware.DefaultCORSConfig(),
		},
		authMw,
		scheduleHandler.NewHandler(scheduleSvc, availabilitySvc),
		appointmentHandler.NewHandler(bookingSvc, patientSvc, statsSvc),
		blockedslotHandler.NewHandler(bookingSvc),
		patientHandler.NewHandler(patientSvc, authSvc),
		authHandler.NewHandler(authSvc),
		statsHandler.NewHandler(statsSvc),
		healthHandler.NewHandler(db),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
