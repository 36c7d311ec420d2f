package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/greatkart/pkg/enums"
)

type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags); err != nil {
		return nil, err
	}
	if cfg.Cart.TaxRatePercent.IsNegative() {
		return nil, fmt.Errorf("%s must not be negative", EnvTaxRatePercent)
	}
	currency, err := enums.ParseCurrency(cfg.Cart.Currency)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvCurrency, err)
	}
	cfg.Cart.Currency = currency.String()
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("%s must be positive", EnvSessionTTL)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CART_APP_ENV" required:"true"`
	Port         string `envconfig:"CART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CART_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"CART_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"CART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ShutdownTimeout time.Duration `envconfig:"CART_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	ReadTimeout     time.Duration `envconfig:"CART_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"CART_HTTP_WRITE_TIMEOUT" default:"15s"`
	CORSOrigins     []string      `envconfig:"CART_HTTP_CORS_ORIGINS" default:"http://localhost:3000"`
}

type DBConfig struct {
	DSN    string `envconfig:"CART_DB_DSN"`
	Driver string `envconfig:"CART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CART_DB_HOST"`
	LegacyPort     int    `envconfig:"CART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CART_DB_USER"`
	LegacyPassword string `envconfig:"CART_DB_PASSWORD"`
	LegacyName     string `envconfig:"CART_DB_NAME"`
	LegacySSLMode  string `envconfig:"CART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CART_REDIS_URL"`
	Address      string        `envconfig:"CART_REDIS_ADDR"`
	Password     string        `envconfig:"CART_REDIS_PASSWORD"`
	DB           int           `envconfig:"CART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls the visitor session cookie. The TTL default matches
// two weeks of inactivity.
type SessionConfig struct {
	CookieName string        `envconfig:"CART_SESSION_COOKIE_NAME" default:"sessionid"`
	TTL        time.Duration `envconfig:"CART_SESSION_TTL" default:"336h"`
	Secure     bool          `envconfig:"CART_SESSION_SECURE" default:"false"`
}

type CartConfig struct {
	TaxRatePercent decimal.Decimal `envconfig:"CART_TAX_RATE_PERCENT" default:"2"`
	Currency       string          `envconfig:"CART_CURRENCY" default:"USD"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"CART_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"CART_SQLITE_PATH" default:"greatkart.db"`
	AutoMigrate bool   `envconfig:"CART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(flags FeatureFlagsConfig) error {
	if flags.UseSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = flags.SQLitePath
		}
		return nil
	}
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

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// IsSQLite reports whether the configured driver targets SQLite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}
