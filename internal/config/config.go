package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Store     StoreConfig
	Providers ProvidersConfig
	Fallback  FallbackConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           int
	GinMode        string        // debug, release, test
	RequestTimeout time.Duration // budget for one summary request
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// StoreConfig holds the sqlite station/dive-point store configuration
type StoreConfig struct {
	DSN string
}

// ProvidersConfig holds per-upstream endpoint configuration
type ProvidersConfig struct {
	KHOA ProviderConfig
	KMA  ProviderConfig
	NIFS ProviderConfig
}

// ProviderConfig configures one upstream feed client. An empty BaseURL falls
// back to the client's production endpoint.
type ProviderConfig struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
}

// FallbackConfig bounds the per-family station fallback walks
type FallbackConfig struct {
	WaveExtraAttempts  int
	WaterExtraAttempts int
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.dive-marine")

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.ginmode", "release")
	viper.SetDefault("server.requesttimeout", "15s")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("store.dsn", "dive-marine.db")
	// Empty defaults keep viper.Unmarshal aware of the keys so env-only
	// overrides like DIVE_MARINE_PROVIDERS_KHOA_SERVICEKEY bind.
	for _, provider := range []string{"khoa", "kma", "nifs"} {
		viper.SetDefault("providers."+provider+".baseurl", "")
		viper.SetDefault("providers."+provider+".servicekey", "")
		viper.SetDefault("providers."+provider+".timeout", "5s")
	}
	viper.SetDefault("fallback.waveextraattempts", 9)
	viper.SetDefault("fallback.waterextraattempts", 1)

	// Read from environment variables
	viper.SetEnvPrefix("DIVE_MARINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
