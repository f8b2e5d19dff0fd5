package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Gateways   GatewaysConfig
	Collection CollectionConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// GatewayEndpoint holds one processor gateway's API settings
type GatewayEndpoint struct {
	BaseURL string
	APIKey  string
}

// GatewaysConfig holds processor gateway and collector endpoints
type GatewaysConfig struct {
	Stripe    GatewayEndpoint
	Square    GatewayEndpoint
	PayPal    GatewayEndpoint
	Clover    GatewayEndpoint
	Platform  GatewayEndpoint
	Collector GatewayEndpoint
	Timeout   time.Duration
}

// CollectionConfig holds collection scheduler settings
type CollectionConfig struct {
	Interval time.Duration
	MinCents int64
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "bookedbarber"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		Gateways: GatewaysConfig{
			Stripe: GatewayEndpoint{
				BaseURL: getEnv("STRIPE_GATEWAY_URL", "https://api.stripe.example.com"),
				APIKey:  getEnv("STRIPE_API_KEY", ""),
			},
			Square: GatewayEndpoint{
				BaseURL: getEnv("SQUARE_GATEWAY_URL", "https://api.square.example.com"),
				APIKey:  getEnv("SQUARE_API_KEY", ""),
			},
			PayPal: GatewayEndpoint{
				BaseURL: getEnv("PAYPAL_GATEWAY_URL", "https://api.paypal.example.com"),
				APIKey:  getEnv("PAYPAL_API_KEY", ""),
			},
			Clover: GatewayEndpoint{
				BaseURL: getEnv("CLOVER_GATEWAY_URL", "https://api.clover.example.com"),
				APIKey:  getEnv("CLOVER_API_KEY", ""),
			},
			Platform: GatewayEndpoint{
				BaseURL: getEnv("PLATFORM_GATEWAY_URL", "https://payments.bookedbarber.example.com"),
				APIKey:  getEnv("PLATFORM_API_KEY", ""),
			},
			Collector: GatewayEndpoint{
				BaseURL: getEnv("COLLECTOR_URL", "https://collections.bookedbarber.example.com"),
				APIKey:  getEnv("COLLECTOR_API_KEY", ""),
			},
			Timeout: getEnvAsDuration("GATEWAY_TIMEOUT", 10*time.Second),
		},
		Collection: CollectionConfig{
			Interval: getEnvAsDuration("COLLECTION_INTERVAL", time.Hour),
			MinCents: getEnvAsInt64("COLLECTION_MIN_CENTS", 1000),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
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
