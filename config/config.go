package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Settings   SettingsConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type SettingsConfig struct {
	CacheTTL time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads configuration from an optional config.yaml plus
// environment variables, with defaults for local development.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("campusmart")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; env vars and defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("Server.Port", "8080")
	viper.SetDefault("Server.Env", "development")
	viper.SetDefault("Server.ReadTimeout", "10s")
	viper.SetDefault("Server.WriteTimeout", "10s")

	viper.SetDefault("Database.DSN", "campusmart:campusmart@tcp(localhost:3306)/campusmart?charset=utf8mb4&parseTime=True&loc=Local")
	viper.SetDefault("Database.MaxIdleConns", 10)
	viper.SetDefault("Database.MaxOpenConns", 100)
	viper.SetDefault("Database.ConnMaxLifetime", "1h")

	viper.SetDefault("JWT.AccessSecret", "change-me-in-production")
	viper.SetDefault("JWT.RefreshSecret", "change-me-refresh")
	viper.SetDefault("JWT.AccessExpiry", "15m")
	viper.SetDefault("JWT.RefreshExpiry", "168h")
	viper.SetDefault("JWT.Issuer", "campusmart")

	viper.SetDefault("Settings.CacheTTL", "60s")

	viper.SetDefault("RateLimit.Requests", 100)
	viper.SetDefault("RateLimit.Window", "60s")
}
