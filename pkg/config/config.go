package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	Fulfillment  FulfillmentConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TAGLINK_APP_ENV" required:"true"`
	Port         string `envconfig:"TAGLINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TAGLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TAGLINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TAGLINK_DB_DSN"`
	Driver string `envconfig:"TAGLINK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TAGLINK_DB_HOST"`
	Port     int    `envconfig:"TAGLINK_DB_PORT" default:"5432"`
	User     string `envconfig:"TAGLINK_DB_USER"`
	Password string `envconfig:"TAGLINK_DB_PASSWORD"`
	Name     string `envconfig:"TAGLINK_DB_NAME"`
	SSLMode  string `envconfig:"TAGLINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TAGLINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TAGLINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TAGLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TAGLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name parts are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"TAGLINK_REDIS_URL"`
	Address      string        `envconfig:"TAGLINK_REDIS_ADDR"`
	Password     string        `envconfig:"TAGLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"TAGLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TAGLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TAGLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TAGLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TAGLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TAGLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TAGLINK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TAGLINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TAGLINK_JWT_EXPIRATION_MINUTES" default:"60"`
}

type RateLimitConfig struct {
	PublicWindow   time.Duration `envconfig:"TAGLINK_RATE_LIMIT_PUBLIC_WINDOW" default:"1m"`
	PublicIPLimit  int           `envconfig:"TAGLINK_RATE_LIMIT_PUBLIC_IP_LIMIT" default:"30"`
	IdempotencyTTL time.Duration `envconfig:"TAGLINK_IDEMPOTENCY_TTL" default:"24h"`
}

type FulfillmentConfig struct {
	// TrackingURLTemplate carries a single %s placeholder for the tracking code.
	TrackingURLTemplate string `envconfig:"TAGLINK_TRACKING_URL_TEMPLATE" default:"https://rastreamento.correios.com.br/app/index.php?objeto=%s"`
	ArtEditorPathPrefix string `envconfig:"TAGLINK_ART_EDITOR_PATH_PREFIX" default:"/art-editor"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TAGLINK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TAGLINK_AUTO_MIGRATE" default:"false"`
}
