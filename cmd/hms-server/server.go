package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/carepoint/hms/internal/config"
	"github.com/carepoint/hms/internal/domain/audit"
	"github.com/carepoint/hms/internal/domain/clinical"
	"github.com/carepoint/hms/internal/domain/dashboard"
	"github.com/carepoint/hms/internal/domain/inventory"
	"github.com/carepoint/hms/internal/domain/notification"
	"github.com/carepoint/hms/internal/domain/patient"
	"github.com/carepoint/hms/internal/domain/program"
	"github.com/carepoint/hms/internal/domain/scheduling"
	"github.com/carepoint/hms/internal/domain/staff"
	"github.com/carepoint/hms/internal/domain/task"
	"github.com/carepoint/hms/internal/platform/auth"
	"github.com/carepoint/hms/internal/platform/cache"
	"github.com/carepoint/hms/internal/platform/db"
	"github.com/carepoint/hms/internal/platform/events"
	"github.com/carepoint/hms/internal/platform/middleware"
)

type server struct {
	echo    *echo.Echo
	closers []func() error
}

func (s *server) close() {
	for _, fn := range s.closers {
		_ = fn()
	}
}

// buildServer wires every domain package onto one echo instance. Redis and
// RabbitMQ are optional; without a URL the dashboard is not cached and
// notifications are only stored.
func buildServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (*server, error) {
	srv := &server{}

	key, err := cfg.SigningKey()
	if err != nil {
		return nil, err
	}
	key, generated, err := auth.ResolveSigningKey(key)
	if err != nil {
		return nil, err
	}
	if generated {
		logger.Warn().Msg("AUTH_SIGNING_KEY not set, using a random key; tokens will not survive a restart")
	}
	tokens := auth.NewTokenIssuer(key, cfg.AuthTokenTTL)

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		amqpPub := events.NewAMQPPublisher(cfg.AMQPURL)
		srv.closers = append(srv.closers, amqpPub.Close)
		publisher = amqpPub
	}

	var store cache.Store = cache.Noop{}
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, dashboard caching disabled")
		} else {
			srv.closers = append(srv.closers, redisStore.Close)
			store = redisStore
		}
	}

	tx := db.NewTransactor(pool)

	notifySvc := notification.NewService(notification.NewRepoPG(pool), publisher, logger)
	staffSvc := staff.NewService(staff.NewRepoPG(pool), tokens, cfg.LoginPlaceholderPassword)
	resolver := auth.NewResolver(staffSvc.DefaultActor)
	patientSvc := patient.NewService(patient.NewRepoPG(pool))
	scheduleSvc := scheduling.NewService(scheduling.NewRepoPG(pool), patientSvc, staffSvc, notifySvc, tx)
	clinicalSvc := clinical.NewService(clinical.Repos{
		Prescriptions:  clinical.NewPrescriptionRepoPG(pool),
		LabResults:     clinical.NewLabResultRepoPG(pool),
		MedicalRecords: clinical.NewMedicalRecordRepoPG(pool),
		VitalSigns:     clinical.NewVitalSignRepoPG(pool),
	}, patientSvc, notifySvc, tx)
	programSvc := program.NewService(program.NewRepoPG(pool), patientSvc, tx)
	inventorySvc := inventory.NewService(inventory.NewRepoPG(pool))
	taskSvc := task.NewService(task.NewRepoPG(pool), patientSvc, notifySvc, tx)
	auditSvc := audit.NewService(audit.NewRepoPG(pool))
	dashboardSvc := dashboard.NewService(dashboard.NewRepoPG(pool), scheduleSvc, store, dashboard.Options{
		Capacities: dashboard.Capacities{
			ICU:         cfg.ICUCapacity,
			Ventilators: cfg.VentilatorCapacity,
			Isolation:   cfg.IsolationCapacity,
		},
		CacheTTL: cfg.DashboardCacheTTL,
	}, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	if cfg.BodyLimit != "" {
		e.Use(echomw.BodyLimit(cfg.BodyLimit))
	}
	if cfg.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeout(cfg.RequestTimeout))
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(auth.TokenMiddleware(tokens))
	e.Use(middleware.Audit(logger, auditSvc))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	var pinger db.Pinger
	if pool != nil {
		pinger = pool
	}
	e.GET("/health/db", db.HealthHandler(pinger))

	api := e.Group("/api")
	staff.NewHandler(staffSvc, resolver).RegisterRoutes(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	scheduling.NewHandler(scheduleSvc, resolver).RegisterRoutes(api)
	clinical.NewHandler(clinicalSvc, resolver).RegisterRoutes(api)
	notification.NewHandler(notifySvc).RegisterRoutes(api)
	program.NewHandler(programSvc).RegisterRoutes(api)
	inventory.NewHandler(inventorySvc).RegisterRoutes(api)
	task.NewHandler(taskSvc, resolver).RegisterRoutes(api)
	audit.NewHandler(auditSvc).RegisterRoutes(api)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(api)

	srv.echo = e
	return srv, nil
}
