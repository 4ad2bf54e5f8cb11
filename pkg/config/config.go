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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
	Reconcile    ReconcileConfig
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
	Env          string `envconfig:"BIDHAUS_APP_ENV" required:"true"`
	Port         string `envconfig:"BIDHAUS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BIDHAUS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BIDHAUS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BIDHAUS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"BIDHAUS_DB_DSN"`
	Driver string `envconfig:"BIDHAUS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BIDHAUS_DB_HOST"`
	LegacyPort     int    `envconfig:"BIDHAUS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BIDHAUS_DB_USER"`
	LegacyPassword string `envconfig:"BIDHAUS_DB_PASSWORD"`
	LegacyName     string `envconfig:"BIDHAUS_DB_NAME"`
	LegacySSLMode  string `envconfig:"BIDHAUS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BIDHAUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BIDHAUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BIDHAUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BIDHAUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BIDHAUS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BIDHAUS_REDIS_ADDR"`
	Password     string        `envconfig:"BIDHAUS_REDIS_PASSWORD"`
	DB           int           `envconfig:"BIDHAUS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BIDHAUS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BIDHAUS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BIDHAUS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BIDHAUS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BIDHAUS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BIDHAUS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BIDHAUS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BIDHAUS_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"BIDHAUS_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BIDHAUS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BIDHAUS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BIDHAUS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BIDHAUS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BIDHAUS_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BIDHAUS_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BIDHAUS_AUTO_MIGRATE" default:"false"`
}

type ReconcileConfig struct {
	Interval time.Duration `envconfig:"BIDHAUS_RECONCILE_INTERVAL" default:"1m"`
	LockTTL  time.Duration `envconfig:"BIDHAUS_RECONCILE_LOCK_TTL" default:"5m"`
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
