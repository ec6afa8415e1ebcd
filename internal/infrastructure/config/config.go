package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr string
	Env  string

	DBDriver    string
	DatabaseURL string

	PublicDir string
	UploadDir string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string

	WhatsAppNumber   string
	MaxUploadMB      int
	CORSAllowOrigins string

	LogLevel string
	LogFile  string
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() Config {
	_ = godotenv.Load()

	publicDir := env("PUBLIC_DIR", "./public")

	return Config{
		Addr:              env("APP_ADDR", ":8080"),
		Env:               strings.ToLower(env("APP_ENV", "development")),
		DBDriver:          env("DB_DRIVER", "sqlite3"),
		DatabaseURL:       env("DATABASE_URL", "disma.db"),
		PublicDir:         publicDir,
		UploadDir:         filepath.Join(publicDir, "bucket"),
		AdminUsername:     env("ADMIN_USERNAME", "admin"),
		AdminPassword:     env("ADMIN_PASSWORD", "123456"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		WhatsAppNumber:    env("WHATSAPP_NUMBER", "51965282183"),
		MaxUploadMB:       cast.ToInt(env("MAX_UPLOAD_MB", "10")),
		CORSAllowOrigins:  env("CORS_ALLOW_ORIGINS", "*"),
		LogLevel:          env("LOG_LEVEL", "info"),
		LogFile:           os.Getenv("LOG_FILE"),
	}
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
