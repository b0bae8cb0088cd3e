package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	Midtrans      MidtransConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Local development can run against a file-backed sqlite database
	// instead of Postgres.
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "file:storefront.db?cache=shared"
		}
		return &cfg, nil
	}

	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PERMATA_APP_ENV" required:"true"`
	Port         string `envconfig:"PERMATA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PERMATA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PERMATA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PERMATA_DB_DSN"`
	Driver string `envconfig:"PERMATA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PERMATA_DB_HOST"`
	Port     int    `envconfig:"PERMATA_DB_PORT" default:"5432"`
	User     string `envconfig:"PERMATA_DB_USER"`
	Password string `envconfig:"PERMATA_DB_PASSWORD"`
	Name     string `envconfig:"PERMATA_DB_NAME"`
	SSLMode  string `envconfig:"PERMATA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PERMATA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PERMATA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PERMATA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PERMATA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PERMATA_REDIS_URL"`
	Address      string        `envconfig:"PERMATA_REDIS_ADDR"`
	Password     string        `envconfig:"PERMATA_REDIS_PASSWORD"`
	DB           int           `envconfig:"PERMATA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PERMATA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PERMATA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PERMATA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PERMATA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PERMATA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PERMATA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PERMATA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PERMATA_JWT_EXPIRATION_MINUTES" required:"true"`
	CookieName        string `envconfig:"PERMATA_JWT_COOKIE_NAME" default:"auth_token"`
	CookieSecure      bool   `envconfig:"PERMATA_JWT_COOKIE_SECURE" default:"false"`
}

// TokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PERMATA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PERMATA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PERMATA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PERMATA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PERMATA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PERMATA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PERMATA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PERMATA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PERMATA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PERMATA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PERMATA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PERMATA_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

type MidtransConfig struct {
	ServerKey string `envconfig:"PERMATA_MIDTRANS_SERVER_KEY"`
	ClientKey string `envconfig:"PERMATA_MIDTRANS_CLIENT_KEY"`
	Env       string `envconfig:"PERMATA_MIDTRANS_ENV" default:"sandbox"`
	ItemName  string `envconfig:"PERMATA_MIDTRANS_ITEM_NAME" default:"Permata Indah Jewelry"`
}

// Environment returns the normalized Midtrans environment (sandbox/production).
func (m MidtransConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(m.Env))
	if env == "" {
		return MidtransEnvSandbox
	}
	return env
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PERMATA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PERMATA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
