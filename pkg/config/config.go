package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "KARIKADAI_DB_DSN"
	EnvDBHost = "KARIKADAI_DB_HOST"
	EnvDBUser = "KARIKADAI_DB_USER"
	EnvDBName = "KARIKADAI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminConfig
	Shop         ShopConfig
	Cart         CartConfig
	Cron         CronConfig
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
	Env          string `envconfig:"KARIKADAI_APP_ENV" required:"true"`
	Port         string `envconfig:"KARIKADAI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KARIKADAI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KARIKADAI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"KARIKADAI_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"KARIKADAI_DB_DSN"`
	Driver string `envconfig:"KARIKADAI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KARIKADAI_DB_HOST"`
	LegacyPort     int    `envconfig:"KARIKADAI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KARIKADAI_DB_USER"`
	LegacyPassword string `envconfig:"KARIKADAI_DB_PASSWORD"`
	LegacyName     string `envconfig:"KARIKADAI_DB_NAME"`
	LegacySSLMode  string `envconfig:"KARIKADAI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KARIKADAI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KARIKADAI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KARIKADAI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KARIKADAI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KARIKADAI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KARIKADAI_REDIS_ADDR"`
	Password     string        `envconfig:"KARIKADAI_REDIS_PASSWORD"`
	DB           int           `envconfig:"KARIKADAI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KARIKADAI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KARIKADAI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KARIKADAI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KARIKADAI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KARIKADAI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"KARIKADAI_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"KARIKADAI_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"KARIKADAI_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"KARIKADAI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"KARIKADAI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"KARIKADAI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"KARIKADAI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"KARIKADAI_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig carries the single staff credential. The password hash is an
// Argon2id string produced by pkg/security.
type AdminConfig struct {
	Username     string `envconfig:"KARIKADAI_ADMIN_USERNAME" required:"true"`
	PasswordHash string `envconfig:"KARIKADAI_ADMIN_PASSWORD_HASH" required:"true"`
}

type ShopConfig struct {
	Name                 string `envconfig:"KARIKADAI_SHOP_NAME" default:"Namma Kari Kadai"`
	Phone                string `envconfig:"KARIKADAI_SHOP_PHONE" default:"919789723104"`
	BroilerFallbackPrice string `envconfig:"KARIKADAI_BROILER_FALLBACK_PRICE" default:"240"`
	CountryFallbackPrice string `envconfig:"KARIKADAI_COUNTRY_FALLBACK_PRICE" default:"650"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"KARIKADAI_CART_TTL" default:"168h"`
}

type CronConfig struct {
	StockResetHour int           `envconfig:"KARIKADAI_STOCK_RESET_HOUR" default:"5"`
	TickInterval   time.Duration `envconfig:"KARIKADAI_CRON_TICK_INTERVAL" default:"1m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"KARIKADAI_AUTO_MIGRATE" default:"false"`
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
