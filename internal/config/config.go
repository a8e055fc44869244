package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Development-only fallbacks. Both JWT_SECRET and PASSWORD_PEPPER must be
// provided by the environment in production.
const (
	devJWTSecret      = "dev-insecure-jwt-secret"
	devPasswordPepper = "dev-insecure-pepper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	PasswordPepper  string
	BcryptCost      int
	DefaultTimezone string
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/dailyquest?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", devJWTSecret),
		PasswordPepper:  getEnv("PASSWORD_PEPPER", devPasswordPepper),
		BcryptCost:      getEnvInt("BCRYPT_COST", 16),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "UTC"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}

	if cfg.JWTSecret == devJWTSecret {
		log.Println("WARNING: JWT_SECRET not set, using development fallback")
	}
	if cfg.PasswordPepper == devPasswordPepper {
		log.Println("WARNING: PASSWORD_PEPPER not set, using development fallback")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
