package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shakil5281/TallyKhata-sub000/internal/config"
	"github.com/shakil5281/TallyKhata-sub000/internal/infra"
	"github.com/shakil5281/TallyKhata-sub000/internal/repository"
	"github.com/shakil5281/TallyKhata-sub000/internal/router"
	"github.com/shakil5281/TallyKhata-sub000/internal/service"
	"github.com/shakil5281/TallyKhata-sub000/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabasePath, cfg.DatabaseLog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open ledger database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Backup scheduler runs outside the request path; it only writes
	// snapshots when the profile has backups enabled.
	partyRepo := repository.NewPartyRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	adminSvc := service.NewAdminService(db, partyRepo, txRepo, profileRepo)
	partySvc := service.NewPartyService(partyRepo, txRepo)
	exportSvc := service.NewExportService(partyRepo, txRepo, adminSvc, partySvc)
	worker.StartBackupScheduler(ctx, exportSvc, adminSvc, cfg.BackupDir,
		time.Duration(cfg.BackupCheckMinutes)*time.Minute)

	r := router.New(cfg, db)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("ledger backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
