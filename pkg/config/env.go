package config

// EnvPrefix is handed to envconfig; every field below carries an explicit
// envconfig tag so the prefix only matters for fields without one.
const EnvPrefix = "CART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "CART_APP_ENV"
	EnvPort         = "CART_APP_PORT"
	EnvLogLevel     = "CART_LOG_LEVEL"
	EnvLogFormat    = "CART_LOG_FORMAT"
	EnvLogWarnStack = "CART_LOG_WARN_STACK"

	EnvDBDSN      = "CART_DB_DSN"
	EnvDBHost     = "CART_DB_HOST"
	EnvDBPort     = "CART_DB_PORT"
	EnvDBUser     = "CART_DB_USER"
	EnvDBPassword = "CART_DB_PASSWORD"
	EnvDBName     = "CART_DB_NAME"
	EnvDBSSLMode  = "CART_DB_SSLMODE"

	EnvRedisURL  = "CART_REDIS_URL"
	EnvRedisAddr = "CART_REDIS_ADDR"

	EnvSessionCookie = "CART_SESSION_COOKIE_NAME"
	EnvSessionTTL    = "CART_SESSION_TTL"

	EnvTaxRatePercent = "CART_TAX_RATE_PERCENT"
	EnvCurrency       = "CART_CURRENCY"

	EnvUseSQLite   = "CART_USE_SQLITE"
	EnvSQLitePath  = "CART_SQLITE_PATH"
	EnvAutoMigrate = "CART_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
