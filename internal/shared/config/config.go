package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	DatabaseURL string

	AWSRegion       string
	UploadsS3Bucket string
	UploadsS3Prefix string
	PresignTTL      time.Duration

	RedisAddr     string
	RedisPassword string

	RateLimitRPS   float64
	RateLimitBurst int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "dev")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("UPLOADS_S3_PREFIX", "documents/")
	viper.SetDefault("PRESIGN_TTL_MINUTES", 15)
	viper.SetDefault("RATE_LIMIT_RPS", 0)
	viper.SetDefault("RATE_LIMIT_BURST", 0)

	env := normalizeEnv(viper.GetString("ENV"))
	dbURL := viper.GetString("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:               viper.GetString("PORT"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(viper.GetString("CORS_ALLOW_ORIGINS")),
		DatabaseURL:        dbURL,
		AWSRegion:          viper.GetString("AWS_REGION"),
		UploadsS3Bucket:    viper.GetString("UPLOADS_S3_BUCKET"),
		UploadsS3Prefix:    normalizePrefix(viper.GetString("UPLOADS_S3_PREFIX")),
		PresignTTL:         time.Duration(viper.GetInt("PRESIGN_TTL_MINUTES")) * time.Minute,
		RedisAddr:          viper.GetString("REDIS_ADDR"),
		RedisPassword:      viper.GetString("REDIS_PASSWORD"),
		RateLimitRPS:       viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     viper.GetInt("RATE_LIMIT_BURST"),
		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		UIRedirectURL:      viper.GetString("UI_REDIRECT_URL"),
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizePrefix(raw string) string {
	prefix := strings.TrimSpace(raw)
	if prefix == "" {
		return ""
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
