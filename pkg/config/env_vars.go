package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "BIDHAUS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "BIDHAUS_APP_ENV"
	EnvPort       = "BIDHAUS_APP_PORT"
	EnvDBDSN      = "BIDHAUS_DB_DSN"
	EnvDBHost     = "BIDHAUS_DB_HOST"
	EnvDBUser     = "BIDHAUS_DB_USER"
	EnvDBName     = "BIDHAUS_DB_NAME"
	EnvRedisURL   = "BIDHAUS_REDIS_URL"
	EnvJWTSecret  = "BIDHAUS_JWT_SECRET"
	EnvJWTIssuer  = "BIDHAUS_JWT_ISSUER"
	EnvJWTExpMins = "BIDHAUS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
