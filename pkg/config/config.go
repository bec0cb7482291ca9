package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "EASYBODY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "EASYBODY_DB_DSN"
	EnvDBHost = "EASYBODY_DB_HOST"
	EnvDBUser = "EASYBODY_DB_USER"
	EnvDBName = "EASYBODY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	ReportLimit  ReportRateLimitConfig
	Search       SearchConfig
	Media        MediaConfig
	S3           S3Config
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
	Env          string `envconfig:"EASYBODY_APP_ENV" required:"true"`
	Port         string `envconfig:"EASYBODY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"EASYBODY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EASYBODY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"EASYBODY_DB_DSN"`
	Driver string `envconfig:"EASYBODY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"EASYBODY_DB_HOST"`
	LegacyPort     int    `envconfig:"EASYBODY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"EASYBODY_DB_USER"`
	LegacyPassword string `envconfig:"EASYBODY_DB_PASSWORD"`
	LegacyName     string `envconfig:"EASYBODY_DB_NAME"`
	LegacySSLMode  string `envconfig:"EASYBODY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EASYBODY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EASYBODY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EASYBODY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EASYBODY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"EASYBODY_REDIS_URL"`
	Address      string        `envconfig:"EASYBODY_REDIS_ADDR"`
	Password     string        `envconfig:"EASYBODY_REDIS_PASSWORD"`
	DB           int           `envconfig:"EASYBODY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EASYBODY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EASYBODY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EASYBODY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EASYBODY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EASYBODY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"EASYBODY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"EASYBODY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"EASYBODY_JWT_EXPIRATION_MINUTES" default:"60"`
}

// ReportRateLimitConfig throttles report submissions per reporter.
type ReportRateLimitConfig struct {
	Window time.Duration `envconfig:"EASYBODY_REPORT_RATE_LIMIT_WINDOW" default:"1h"`
	Limit  int           `envconfig:"EASYBODY_REPORT_RATE_LIMIT" default:"10"`
}

type SearchConfig struct {
	DefaultRadiusKm float64 `envconfig:"EASYBODY_SEARCH_DEFAULT_RADIUS_KM" default:"10"`
	MaxRadiusKm     float64 `envconfig:"EASYBODY_SEARCH_MAX_RADIUS_KM" default:"100"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"EASYBODY_MAX_UPLOAD_MB" default:"10"`
}

type S3Config struct {
	Bucket          string        `envconfig:"EASYBODY_S3_BUCKET"`
	Region          string        `envconfig:"EASYBODY_S3_REGION" default:"us-east-1"`
	AccessKeyID     string        `envconfig:"EASYBODY_S3_ACCESS_KEY_ID"`
	SecretAccessKey string        `envconfig:"EASYBODY_S3_SECRET_ACCESS_KEY"`
	Endpoint        string        `envconfig:"EASYBODY_S3_ENDPOINT"`
	PublicBaseURL   string        `envconfig:"EASYBODY_S3_PUBLIC_BASE_URL"`
	UploadURLExpiry time.Duration `envconfig:"EASYBODY_S3_UPLOAD_URL_EXPIRY" default:"1h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"EASYBODY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
