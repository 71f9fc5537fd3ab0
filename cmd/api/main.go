package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/bootstrap"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/logger"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	//.envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	catalog, err := bootstrap.OpenCatalog(connectCtx, cfg, log)
	cancel()
	if err != nil {
		log.Error("catalog open failed", zap.Error(err))
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := catalog.Close(closeCtx); err != nil {
			log.Warn("catalog close failed", zap.Error(err))
		}
	}()

	//Usecase / Handler
	productUC := usecase.NewProductUsecase(catalog.Products, log.Named("product"))
	e := server.New(cfg, log, server.Handlers{
		Product: handler.NewProductHandler(productUC),
		Seed:    handler.NewSeedHandler(productUC),
		Health:  handler.NewHealthHandler(nil),
	})

	log.Info("starting",
		zap.String("env", cfg.GoEnv),
		zap.String("driver", cfg.CatalogDriver),
		zap.String("port", cfg.Port),
	)
	return server.Start(ctx, e, ":"+cfg.Port, log)
}
