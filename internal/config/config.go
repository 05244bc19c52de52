package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr            string
	DatabaseURL         string
	RedisAddr           string
	RedisPassword       string
	CacheTTL            time.Duration
	JWTSecret           string
	TokenTTL            time.Duration
	ManagerLogin        string
	ManagerPasswordHash string
	CORSAllowedOrigins  string
}

// Load reads .env when present, then the environment, with defaults suited
// to local development (sqlite file, no redis).
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "venueops.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("MANAGER_LOGIN", "manager")

	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		return nil, err
	}
	tokenTTL, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPAddr:            v.GetString("HTTP_ADDR"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		CacheTTL:            cacheTTL,
		JWTSecret:           v.GetString("JWT_SECRET"),
		TokenTTL:            tokenTTL,
		ManagerLogin:        v.GetString("MANAGER_LOGIN"),
		ManagerPasswordHash: v.GetString("MANAGER_PASSWORD_HASH"),
		CORSAllowedOrigins:  v.GetString("CORS_ALLOWED_ORIGINS"),
	}, nil
}
