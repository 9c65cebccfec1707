// Package main запускает HTTP-сервер системы агроведа.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agroveda/agroveda-system/internal/config"
	"github.com/agroveda/agroveda-system/internal/handler"
	"github.com/agroveda/agroveda-system/internal/ledger"
	"github.com/agroveda/agroveda-system/internal/memberid"
	"github.com/agroveda/agroveda-system/internal/registry"
	"github.com/agroveda/agroveda-system/internal/scan"
	"github.com/agroveda/agroveda-system/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		sugar.Fatalw("storage initialization error", "error", err.Error())
	}

	reg := registry.New(storage.NewCustomerStore(store), memberid.New(), logger)
	led := ledger.New(storage.NewBatchStore(store), logger)

	if cfg.SeedDemo {
		led.SeedDemo()
	}

	resolver := scan.NewResolver(reg, led)

	h := handler.NewHandler(reg, led, resolver, logger)
	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting agroveda server", "addr", cfg.RunAddress, "data", cfg.DataDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
