package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Store     StoreConfig     `mapstructure:"store" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// Store drivers understood by the server bootstrap.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	Driver         string `mapstructure:"driver" validate:"required,oneof=mongo postgres memory"`
	URI            string `mapstructure:"uri" validate:"required_unless=Driver memory"`
	Database       string `mapstructure:"database" validate:"required_if=Driver mongo"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	SecretKey                string `mapstructure:"secret_key" validate:"required,min=32"`
	Algorithm                string `mapstructure:"algorithm" validate:"required,oneof=HS256 HS384 HS512"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes" validate:"required,gt=0"`
	BcryptCost               int    `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// RateLimitConfig controls throttling of the authentication endpoints.
// When RedisURL is empty the limiter is kept in process memory.
type RateLimitConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"gt=0"`
	Burst             int    `mapstructure:"burst" validate:"gt=0"`
	RedisURL          string `mapstructure:"redis_url" validate:"omitempty,url"`
}
