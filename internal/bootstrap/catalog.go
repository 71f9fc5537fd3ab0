package bootstrap

import (
	"context"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// Catalog は設定に応じた商品リポジトリと後片付け関数
type Catalog struct {
	Products repo.ProductRepository
	closers  []func(context.Context) error
}

// Close は開いた順の逆で閉じる。
func (c *Catalog) Close(ctx context.Context) error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenCatalog はDB接続、index/migration、redisキャッシュ（任意）まで行う。
func OpenCatalog(ctx context.Context, cfg config.Config, log *zap.Logger) (*Catalog, error) {
	c := &Catalog{}

	switch cfg.CatalogDriver {
	case config.DriverMongo:
		mdb, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, mdb.Client().Disconnect)

		r := infraRepo.NewProductMongoRepository(mdb)
		if err := r.CreateIndexes(ctx); err != nil {
			_ = c.Close(ctx)
			return nil, fmt.Errorf("create indexes: %w", err)
		}
		c.Products = r
		log.Info("mongodb connected", zap.String("database", cfg.MongoDB))

	case config.DriverPostgres:
		gormDB, err := db.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func(context.Context) error { return sqlDB.Close() })

		r := infraRepo.NewProductGormRepository(gormDB)
		if err := r.Migrate(ctx); err != nil {
			_ = c.Close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		c.Products = r
		log.Info("postgres connected")

	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.CatalogDriver)
	}

	rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		// キャッシュなしで続行
		log.Warn("redis unavailable, cache disabled", zap.Error(err))
		return c, nil
	}
	if rdb != nil {
		c.closers = append(c.closers, func(context.Context) error { return rdb.Close() })
		c.Products = cache.NewProductCache(c.Products, rdb, cfg.CacheTTL, log.Named("cache"))
		log.Info("redis cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	return c, nil
}
