package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// CacheConfig holds cache TTL configuration
type CacheConfig struct {
	ContractTTL time.Duration `mapstructure:"contract_ttl"`
	PriceTTL    time.Duration `mapstructure:"price_ttl"`
}

// ProviderConfig holds one upstream provider's settings
type ProviderConfig struct {
	APIURL            string `mapstructure:"api_url"`
	APIKey            string `mapstructure:"api_key"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// ProvidersConfig holds per-provider API configuration.
// EtherscanKeys maps chain names to their explorer API keys.
type ProvidersConfig struct {
	CoinGecko        ProviderConfig    `mapstructure:"coingecko"`
	OneInch          ProviderConfig    `mapstructure:"oneinch"`
	DexScreener      ProviderConfig    `mapstructure:"dexscreener"`
	Etherscan        ProviderConfig    `mapstructure:"etherscan"`
	EtherscanKeys    map[string]string `mapstructure:"etherscan_keys"`
	CallTimeout      time.Duration     `mapstructure:"call_timeout"`
	BreakerThreshold int               `mapstructure:"breaker_threshold"`
	BreakerCooldown  time.Duration     `mapstructure:"breaker_cooldown"`
}

// RegistryConfig holds token registry configuration
type RegistryConfig struct {
	VerifyWorkers int `mapstructure:"verify_workers"`
}

// ResolverConfig holds configuration for the resolver service
type ResolverConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Server     ServerConfig    `mapstructure:"server"`
	Auth       AuthConfig      `mapstructure:"auth"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Cache      CacheConfig     `mapstructure:"cache"`
	Providers  ProvidersConfig `mapstructure:"providers"`
	Registry   RegistryConfig  `mapstructure:"registry"`
}

// LoadResolverConfig loads configuration for the resolver service
func LoadResolverConfig(configFile string, envPath string) (*ResolverConfig, error) {
	v := configureViper("resolverd", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "TOKEN_EVENTS")
	v.SetDefault("nats.connection_name", "token-resolver")
	v.SetDefault("cache.contract_ttl", "24h")
	v.SetDefault("cache.price_ttl", "5m")
	v.SetDefault("providers.coingecko.api_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("providers.coingecko.requests_per_minute", 10)
	v.SetDefault("providers.oneinch.api_url", "https://api.1inch.dev")
	v.SetDefault("providers.oneinch.requests_per_minute", 10)
	v.SetDefault("providers.dexscreener.api_url", "https://api.dexscreener.com/latest/dex")
	v.SetDefault("providers.dexscreener.requests_per_minute", 30)
	v.SetDefault("providers.etherscan.requests_per_minute", 5)
	v.SetDefault("providers.call_timeout", "10s")
	v.SetDefault("providers.breaker_threshold", 5)
	v.SetDefault("providers.breaker_cooldown", "60s")
	v.SetDefault("registry.verify_workers", 8)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config ResolverConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("TOKEN_RESOLVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields
// when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Cache
		"cache.contract_ttl",
		"cache.price_ttl",
		// Providers
		"providers.coingecko.api_url",
		"providers.coingecko.api_key",
		"providers.coingecko.requests_per_minute",
		"providers.oneinch.api_url",
		"providers.oneinch.api_key",
		"providers.oneinch.requests_per_minute",
		"providers.dexscreener.api_url",
		"providers.dexscreener.requests_per_minute",
		"providers.etherscan.api_key",
		"providers.etherscan.requests_per_minute",
		"providers.call_timeout",
		"providers.breaker_threshold",
		"providers.breaker_cooldown",
		// Registry
		"registry.verify_workers",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

func loadEnv(envPath string, service string) {
	// Shared base first, then local, then optional per-service local
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate)
	}
}
