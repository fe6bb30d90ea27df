package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`     // サーバーポート
	GoEnv    string `envconfig:"GO_ENV" default:"dev"`    // dev/prod
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug/info/warn/error

	DBDriver string `envconfig:"DB_DRIVER" default:"mongo"` // mongo/postgres

	MongoURI      string        `envconfig:"MONGO_URI"`
	MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"goodinside"`
	MongoTimeout  time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`

	// DATABASE_URL があれば POSTGRES_* より優先
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"goodinside"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	JWTSecret      string        `envconfig:"JWT_SECRET"` // JWT署名シークレット
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"24h"`
	BcryptCost     int           `envconfig:"BCRYPT_COST" default:"10"`

	//店舗の位置（配送見積もりの起点）
	StoreLatitude       *float64 `envconfig:"STORE_LATITUDE"`
	StoreLongitude      *float64 `envconfig:"STORE_LONGITUDE"`
	DeliveryChargePerKm int64    `envconfig:"DELIVERY_CHARGE_PER_KM" default:"0"`

	//trueならステータス遷移をチェックしない
	OrderStatusPermissive bool `envconfig:"ORDER_STATUS_PERMISSIVE" default:"false"`

	StorageDriver      string `envconfig:"STORAGE_DRIVER" default:"local"` // local/gcs
	UploadDir          string `envconfig:"UPLOAD_DIR" default:"uploads"`
	UploadBaseURL      string `envconfig:"UPLOAD_BASE_URL" default:"/uploads"`
	GCSBucket          string `envconfig:"GCS_BUCKET"`
	GCSCredentialsFile string `envconfig:"GCS_CREDENTIALS_FILE"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Loadは.envを読んでから環境変数
func Load() (Config, error) {
	// .envは無くてもよい
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// 必須チェック
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.StoreLatitude == nil {
		return fmt.Errorf("STORE_LATITUDE is required")
	}
	if c.StoreLongitude == nil {
		return fmt.Errorf("STORE_LONGITUDE is required")
	}
	if *c.StoreLatitude < -90 || *c.StoreLatitude > 90 {
		return fmt.Errorf("STORE_LATITUDE must be between -90 and 90")
	}
	if *c.StoreLongitude < -180 || *c.StoreLongitude > 180 {
		return fmt.Errorf("STORE_LONGITUDE must be between -180 and 180")
	}

	switch strings.ToLower(c.DBDriver) {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" && c.PostgresPassword == "" {
			return fmt.Errorf("DATABASE_URL or POSTGRES_PASSWORD is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be mongo or postgres: %q", c.DBDriver)
	}

	switch strings.ToLower(c.StorageDriver) {
	case StorageLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required")
		}
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be local or gcs: %q", c.StorageDriver)
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// DSNはpostgres接続文字列
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) StoreLocation() (lat, lng float64) {
	if c.StoreLatitude != nil {
		lat = *c.StoreLatitude
	}
	if c.StoreLongitude != nil {
		lng = *c.StoreLongitude
	}
	return lat, lng
}
