package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/glekoz/rvdesk/config"
	"github.com/glekoz/rvdesk/internal/export"
	"github.com/glekoz/rvdesk/internal/fixtures"
	"github.com/glekoz/rvdesk/internal/importer"
	"github.com/glekoz/rvdesk/internal/repository"
	"github.com/glekoz/rvdesk/internal/service"
	"github.com/glekoz/rvdesk/internal/web"
	"github.com/glekoz/rvdesk/pkg/logger"
)

func main() {
	cfg, err := config.NewConfig(".env")
	if err != nil {
		log.Fatal(err)
	}
	logger := logger.New(os.Stdout, &slog.HandlerOptions{Level: logger.ParseLevel(cfg.Log.Level)})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed(ctx, cfg)
	if err != nil {
		logger.Error("failed to load seed data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := service.New(seed, logger, service.WithDelays(service.Delays{
		Read:  cfg.Store.ReadDelay(),
		Write: cfg.Store.WriteDelay(),
		Views: cfg.Store.ViewsDelay(),
	}))

	pdf, err := export.NewPDFConfig(cfg.Export.FontFile, cfg.Export.FontName)
	if err != nil {
		logger.Error("failed to load export font", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handler := web.NewHandler(svc, logger,
		web.WithExporter(export.New(pdf)),
		web.WithReset(cfg.Server.AllowReset),
	)
	server := web.NewServer(handler, web.NewMetrics(svc.Counts))

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	var wg sync.WaitGroup
	if cfg.Import.Enabled {
		im, err := importer.New(importer.Config{
			Dir:          cfg.Import.Dir,
			PollInterval: cfg.Import.PollInterval(),
			MaxWorkers:   cfg.Import.MaxWorkers,
			FileTimeout:  cfg.Import.FileTimeout(),
		}, svc, logger)
		if err != nil {
			logger.Error("failed to start importer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			im.Run(ctx)
		}()
		logger.Info("importer watching", slog.String("dir", im.SourcePath))
	}

	go func() {
		<-ctx.Done()

		logger.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", slog.String("error", err.Error()))
		}
	}()

	logger.Info(fmt.Sprintf("starting server on :%s", cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", slog.String("error", err.Error()))
		stop()
		wg.Wait()
		os.Exit(1)
	}

	wg.Wait()
	logger.Info("server stopped")
}

// loadSeed picks postgres, a fixtures file or the embedded set, in that order.
func loadSeed(ctx context.Context, cfg config.Config) (fixtures.Set, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var src fixtures.Source = fixtures.Embedded{}
	switch {
	case cfg.Store.SeedFromPG:
		pool, err := repository.NewPool(ctx, cfg.PG)
		if err != nil {
			return fixtures.Set{}, err
		}
		defer pool.Close()
		src = repository.New(pool)
	case cfg.Store.SeedFile != "":
		src = fixtures.File{Path: cfg.Store.SeedFile}
	}
	return src.Seed(ctx)
}
