package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/communiteq/time-registration/internal/api"
	"github.com/communiteq/time-registration/internal/core/service"
	"github.com/communiteq/time-registration/internal/infrastructure/config"
	"github.com/communiteq/time-registration/internal/infrastructure/errtrack"
	"github.com/communiteq/time-registration/internal/infrastructure/queue"
	"github.com/communiteq/time-registration/internal/narrative"
	"github.com/communiteq/time-registration/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "time-registration",
		Fields:  map[string]string{"env": cfg.Env},
	})

	tracker, err := errtrack.New(errtrack.Options{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Env,
		Release:     cfg.Sentry.Release,
	})
	if err != nil {
		return err
	}
	defer tracker.Flush(2 * time.Second)
	defer tracker.Recover()

	loc, err := cfg.ReportLocation()
	if err != nil {
		return err
	}
	narrator, err := narrative.New(cfg.Locale)
	if err != nil {
		return fmt.Errorf("narrative: %w", err)
	}

	infra, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.close()

	// The dispatcher outlives request contexts but stops with the server.
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	defer cancelDispatch()
	dispatcher := queue.NewDispatcher(cfg.Notifications.Workers, infra.notifier, logger.Component("dispatcher"))
	dispatcher.Start(dispatchCtx)

	authz := service.NewGroupAuthorizer(cfg.TimeRegistration.Groups)
	timers := service.NewTimerService(service.TimerDeps{
		Entries:   infra.entries,
		Timers:    infra.activeTimers,
		Directory: infra.directory,
		Authz:     authz,
		Locker:    infra.locker,
		Narrator:  narrator,
		Events:    dispatcher,
	}, service.RoundingConfig{
		IntervalMinutes:  cfg.TimeRegistration.RoundingInterval,
		RoundUpAtMinutes: cfg.TimeRegistration.RoundUpAt,
	}, logger.Component("timer"))
	reports := service.NewReportService(
		infra.entries,
		infra.directory,
		service.NewCategoryVisibility(infra.directory),
		narrator,
		loc,
		logger.Component("report"),
	)

	e := api.NewRouter(api.RouterDeps{
		Timers:    timers,
		Reports:   reports,
		Directory: infra.directory,
		Authz:     authz,
		Readiness: infra.readiness,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
		Reporter:  tracker,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("notifier", cfg.Notifications.Backend).
			Str("locale", narrator.Locale()).
			Bool("sentry", tracker.Enabled()).
			Msg("time registration API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	return nil
}
