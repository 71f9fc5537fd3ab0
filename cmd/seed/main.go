package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/bootstrap"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// カタログをサンプル商品で入れ替えて終了する
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	catalog, err := bootstrap.OpenCatalog(ctx, cfg, log)
	if err != nil {
		log.Fatal("catalog open failed", zap.Error(err))
	}

	n, err := usecase.NewProductUsecase(catalog.Products, log).Seed(ctx)
	_ = catalog.Close(ctx)
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	fmt.Printf("Seeded %d products\n", n)
}
