package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trazabilidad/internal/config"
	"trazabilidad/internal/infra"
	"trazabilidad/internal/qr"
	"trazabilidad/internal/router"
	"trazabilidad/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	mailer := infra.NewMailer(cfg, infra.NewBreaker("smtp", infra.DefaultBreakerConfig()))
	if !mailer.Enabled() {
		log.Warn().Msg("SMTP_HOST not set, quality alerts will be dropped")
	}

	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	qrCfg := qr.DefaultConfig()
	if cfg.QRMaxBytes > 0 {
		qrCfg.MaxBytes = cfg.QRMaxBytes
	}
	pool := worker.NewPool(rdb)
	pool.Register(worker.QueueEtiquetas, worker.JobEtiquetaQR, worker.NewEtiquetaWorker(qr.NewFileWriter(cfg.QRStoragePath, qrCfg)))
	pool.Register(worker.QueueEmail, worker.JobEmail, worker.NewEmailWorker(mailer))
	pool.Start(ctx, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, mailer)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("trazabilidad backend listening on :%d", cfg.Port)
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
		log.Error().Err(err).Msg("forced shutdown")
	}

	// Stop pulling jobs and let in-flight ones finish.
	cancel()
	pool.Wait()
	_ = rdb.Close()
	log.Info().Msg("server exited")
}
