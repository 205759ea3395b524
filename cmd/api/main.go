package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carex-health/carex-api/internal/config"
	"github.com/carex-health/carex-api/internal/email"
	adminHandler "github.com/carex-health/carex-api/internal/handler/admin"
	appointmentHandler "github.com/carex-health/carex-api/internal/handler/appointment"
	gateHandler "github.com/carex-health/carex-api/internal/handler/gate"
	patientHandler "github.com/carex-health/carex-api/internal/handler/patient"
	userHandler "github.com/carex-health/carex-api/internal/handler/user"
	"github.com/carex-health/carex-api/internal/middleware"
	"github.com/carex-health/carex-api/internal/repository"
	"github.com/carex-health/carex-api/internal/router"
	appointmentService "github.com/carex-health/carex-api/internal/service/appointment"
	"github.com/carex-health/carex-api/internal/service/gate"
	registrationService "github.com/carex-health/carex-api/internal/service/registration"
	"github.com/carex-health/carex-api/internal/store"
	"github.com/carex-health/carex-api/internal/validation"
	"github.com/carex-health/carex-api/pkg/logger"
	"github.com/carex-health/carex-api/pkg/metrics"
	"github.com/carex-health/carex-api/pkg/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger(nil).Fatal(err, "failed to load configuration")
	}

	logg := newLogger(cfg.Log)

	m := metrics.NewMetrics("carex")

	// Initialize document store
	docStore, err := newStore(cfg.Store)
	if err != nil {
		logg.Fatal(err, "failed to connect to document store")
	}
	docStore = store.WithMetrics(docStore, m)
	defer docStore.Close(context.Background())

	// Initialize session marker store
	sessions, err := newSessionStore(cfg.Session)
	if err != nil {
		logg.Fatal(err, "failed to connect to session store")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(docStore, cfg.Store.Collections.Users)
	patientRepo := repository.NewPatientRepository(docStore, cfg.Store.Collections.Patients)
	appointmentRepo := repository.NewAppointmentRepository(docStore, cfg.Store.Collections.Appointments)

	// Initialize notifier
	var notifier appointmentService.Notifier
	if cfg.SMTP.Host != "" {
		notifier = email.NewSender(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, logg)
	}

	// Initialize services
	registrationSvc := registrationService.NewService(userRepo, patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, userRepo, notifier)
	gateSvc := gate.NewService(gate.Config{
		Passkey:     cfg.Gate.Passkey,
		PasskeyHash: cfg.Gate.PasskeyHash,
		TokenSecret: cfg.Gate.TokenSecret,
		TokenExpiry: cfg.Gate.TokenExpiry,
	}, sessions, m)

	// Initialize handlers
	v := validation.New()
	userH := userHandler.NewHandler(registrationSvc, v)
	patientH := patientHandler.NewHandler(registrationSvc, v)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, v)
	gateH := gateHandler.NewHandler(gateSvc)
	adminH := adminHandler.NewHandler(appointmentSvc, v)

	guard := middleware.NewGateGuard(gateSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(guard, userH, patientH, appointmentH, gateH, adminH, m, router.Config{
		RateLimit: middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RequestsPerSecond,
			Burst: cfg.RateLimit.Burst,
		},
		CORS: corsConfig,
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logg.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.Fatal(err, "server forced to shutdown")
	}

	logg.Info("server exited properly")
}

func newLogger(cfg config.LogConfig) *logger.Logger {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		level = logger.InfoLevel
	}
	return logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Pretty,
	})
}

func newStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "mongo":
		return store.NewMongoStore(cfg.URI, cfg.Database)
	case "postgres":
		return store.NewPostgresStore(cfg.PostgresDSN)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func newSessionStore(cfg config.SessionConfig) (session.Store, error) {
	switch cfg.Driver {
	case "redis":
		return session.NewRedisStore(cfg.RedisURL)
	case "memory":
		return session.NewMemoryStore(cfg.CleanupInterval), nil
	default:
		return nil, fmt.Errorf("unknown session driver %q", cfg.Driver)
	}
}
