package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// ConfigはカタログAPIサーバーの設定
type Config struct {
	Port        string // サーバーポート（5000）
	GoEnv       string // development/production
	FrontendURL string // CORSで許可するフロントURL
	LogLevel    string

	CatalogDriver string // mongo / postgres

	MongoURI string // mongo のとき必須
	MongoDB  string

	DatabaseURL string // postgres（空ならPOSTGRES_*から組み立て）

	RedisAddr     string // 空ならキャッシュ無効
	RedisPassword string
	CacheTTL      time.Duration

	SeedKey string
}

func (c Config) IsProduction() bool { return c.GoEnv == "production" }

// AllowedOrigin はCORSのorigin。
func (c Config) AllowedOrigin() string {
	if c.IsProduction() && c.FrontendURL != "" {
		return c.FrontendURL
	}
	return "http://localhost:3000"
}

// Loadは環境変数
func Load() (Config, error) {
	ttl, err := durationEnv("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        getenv("PORT", "5000"),
		GoEnv:       getenv("GO_ENV", "development"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		CatalogDriver: strings.ToLower(getenv("CATALOG_DRIVER", DriverMongo)),

		MongoURI: os.Getenv("MONGODB_URI"),
		MongoDB:  getenv("MONGODB_DB", "storefront"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      ttl,

		SeedKey: getenv("SEED_KEY", "changeme"),
	}

	//必須チェック
	switch cfg.CatalogDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGODB_URI is required")
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = postgresDSN()
		}
	default:
		return Config{}, fmt.Errorf("CATALOG_DRIVER must be %q or %q", DriverMongo, DriverPostgres)
	}

	return cfg, nil
}

// ClientConfig はstorefront CLIの設定
type ClientConfig struct {
	APIURL  string        // カタログAPIのベースURL（/api まで）
	Home    string        // カート・ユーザーの保存先
	Timeout time.Duration // HTTPタイムアウト
}

func LoadClient() (ClientConfig, error) {
	timeout, err := durationEnv("STOREFRONT_TIMEOUT", 10*time.Second)
	if err != nil {
		return ClientConfig{}, err
	}

	home := os.Getenv("STOREFRONT_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return ClientConfig{}, fmt.Errorf("STOREFRONT_HOME is required: %w", err)
		}
		home = filepath.Join(userHome, ".storefront")
	}

	return ClientConfig{
		APIURL:  strings.TrimRight(getenv("STOREFRONT_API_URL", "http://localhost:5000/api"), "/"),
		Home:    home,
		Timeout: timeout,
	}, nil
}

func postgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getenv("POSTGRES_HOST", "localhost"),
		getenv("POSTGRES_PORT", "5432"),
		getenv("POSTGRES_USER", "postgres"),
		getenv("POSTGRES_PASSWORD", "postgres"),
		getenv("POSTGRES_DB", "storefront"),
		getenv("POSTGRES_SSLMODE", "disable"),
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
