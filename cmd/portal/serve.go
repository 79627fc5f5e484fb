package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"medidesk/docs"
	"medidesk/internal/apiclient"
	"medidesk/internal/audit"
	"medidesk/internal/auth"
	"medidesk/internal/cache"
	"medidesk/internal/config"
	"medidesk/internal/db"
	"medidesk/internal/handler"
	"medidesk/internal/notify"
	"medidesk/internal/repository"
	"medidesk/internal/router"
	"medidesk/internal/service"
)

const notificationLimit = 50

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portal server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServer(cfg, newLogger(cfg))
		},
	}
}

func openStore(cfg *config.Config, logger zerolog.Logger) (auth.CredentialStore, func(), error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return auth.NewMemoryStore(), func() {}, nil
	}
	client := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionKeyPrefix)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("session store: redis")
	return auth.NewRedisStore(client), func() { _ = client.Close() }, nil
}

func openAudit(cfg *config.Config, logger zerolog.Logger) (audit.Recorder, func(), error) {
	if !cfg.AuditEnabled() {
		logger.Info().Msg("audit trail disabled")
		return audit.Nop(), func() {}, nil
	}
	gormDB, err := db.Open(cfg.AuditDriver, cfg.AuditDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("audit database: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, nil, fmt.Errorf("audit migrate: %w", err)
	}
	worker := audit.NewWorker(repository.NewActionLogRepository(gormDB), logger)
	logger.Info().Str("driver", cfg.AuditDriver).Msg("audit trail enabled")
	return worker, worker.Close, nil
}

func runServer(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	recorder, closeAudit, err := openAudit(cfg, logger)
	if err != nil {
		return err
	}
	defer closeAudit()

	notes := notify.New(notificationLimit, logger)
	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, store, logger)
	session := service.NewSessionService(client, store, notes, recorder, logger)
	client.OnUnauthorized(session.HandleUnauthorized)

	validate := service.NewValidator()
	workspace := service.NewWorkspace(client, notes, recorder, validate, service.MergePolicy(cfg.DispenseMerge), logger)
	r := handler.NewRenderer(session, notes, workspace)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, router.Handlers{
		Session:      handler.NewSessionHandler(r),
		Doctor:       handler.NewDoctorHandler(r),
		Patient:      handler.NewPatientHandler(r, client),
		Prescription: handler.NewPrescriptionHandler(r),
		Lab:          handler.NewLabHandler(r),
		Pharmacy:     handler.NewPharmacyHandler(r),
		Admin:        handler.NewAdminHandler(r, recorder),
	}, session, validate, logger)

	// The guard answers "loading" until the persisted session is resolved.
	go session.Initialize(context.Background())

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("backend", cfg.APIBaseURL).Msg("starting portal")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down portal")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("portal stopped")
	return nil
}
