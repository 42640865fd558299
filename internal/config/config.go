// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Missing-product policies for the cart view assembler
const (
	MissingProductDrop = "drop"
	MissingProductFail = "fail"
)

// Server-cart policies applied after a successful order submission
const (
	ServerCartAssume   = "assume"
	ServerCartExplicit = "explicit"
)

// Config holds all configuration for the storefront binaries
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Kafka    KafkaConfig
	Gateway  GatewayConfig
	Checkout CheckoutConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name          string
	Version       string
	Environment   string
	Debug         bool
	DefaultUserID string
	CompanyName   string
	CompanyEmail  string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	CartTTL      time.Duration
}

// JWTConfig contains guest token configuration
type JWTConfig struct {
	Secret      string
	GuestExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// KafkaConfig contains order event publishing configuration.
// An empty broker list disables publishing.
type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
}

// GatewayConfig contains the client-side REST gateway settings
type GatewayConfig struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

// CheckoutConfig contains client-side cart and checkout policies
type CheckoutConfig struct {
	MaxConcurrentFetches int
	MissingProductPolicy string
	ServerCartPolicy     string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:          getEnv("APP_NAME", "Storefront"),
			Version:       getEnv("APP_VERSION", "1.0.0"),
			Environment:   getEnv("APP_ENV", "development"),
			Debug:         getEnvAsBool("APP_DEBUG", true),
			DefaultUserID: getEnv("DEFAULT_USER_ID", "mock-user"),
			CompanyName:   getEnv("COMPANY_NAME", "Storefront Inc."),
			CompanyEmail:  getEnv("COMPANY_EMAIL", "support@example.com"),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8001"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "storefront"),
			User:         getEnv("DB_USER", "storefront"),
			Password:     getEnv("DB_PASSWORD", "storefront"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			CartTTL:      getEnvAsDuration("CART_TTL", 30*24*time.Hour),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "storefront-development-secret-change-me"),
			GuestExpiry: getEnvAsDuration("JWT_GUEST_EXPIRE", 30*24*time.Hour),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 300),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Kafka: KafkaConfig{
			Brokers:    getEnvAsSlice("KAFKA_BROKERS", []string{}),
			OrderTopic: getEnv("KAFKA_ORDER_TOPIC", "orders.placed"),
		},
		Gateway: GatewayConfig{
			BaseURL: getEnv("GATEWAY_URL", "http://localhost:8001"),
			Timeout: getEnvAsDuration("GATEWAY_TIMEOUT", 10*time.Second),
			Token:   getEnv("GATEWAY_TOKEN", ""),
		},
		Checkout: CheckoutConfig{
			MaxConcurrentFetches: getEnvAsInt("CART_MAX_CONCURRENT_FETCHES", 10),
			MissingProductPolicy: strings.ToLower(getEnv("CART_MISSING_PRODUCT_POLICY", MissingProductDrop)),
			ServerCartPolicy:     strings.ToLower(getEnv("CHECKOUT_SERVER_CART_POLICY", ServerCartAssume)),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("GATEWAY_URL is required")
	}

	switch c.Checkout.MissingProductPolicy {
	case MissingProductDrop, MissingProductFail:
	default:
		return fmt.Errorf("CART_MISSING_PRODUCT_POLICY must be %q or %q, got %q",
			MissingProductDrop, MissingProductFail, c.Checkout.MissingProductPolicy)
	}

	switch c.Checkout.ServerCartPolicy {
	case ServerCartAssume, ServerCartExplicit:
	default:
		return fmt.Errorf("CHECKOUT_SERVER_CART_POLICY must be %q or %q, got %q",
			ServerCartAssume, ServerCartExplicit, c.Checkout.ServerCartPolicy)
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
