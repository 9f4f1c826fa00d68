package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Store     StoreConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Export    ExportConfig
	Share     ShareConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// BackendConfig points at the remote MIMS REST API that owns all durable
// business data.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// StoreConfig locates the sqlite file holding restored identity,
// preferences and idempotency keys.
type StoreConfig struct {
	Path string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// ExportConfig controls invoice rasterization and PDF packaging.
type ExportConfig struct {
	Scale      float64
	Quality    int
	PageFormat string // "a4" or "a5"
}

// ShareConfig controls the upload-and-deep-link distribution channel.
type ShareConfig struct {
	UploadURL       string
	CountryCode     string
	MessageTemplate string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "mims-console")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("BACKEND_BASE_URL", "https://mims-backend-x0i3.onrender.com")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 20)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("STORE_PATH", "./console.db")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("EXPORT_SCALE", 1.5)
	viper.SetDefault("EXPORT_QUALITY", 80)
	viper.SetDefault("EXPORT_PAGE_FORMAT", "a4")
	viper.SetDefault("SHARE_UPLOAD_URL", "https://tmpfiles.org/api/v1/upload")
	viper.SetDefault("SHARE_COUNTRY_CODE", "91")
	viper.SetDefault("SHARE_MESSAGE_TEMPLATE",
		"Hello {name},\n\nHere is your invoice from {business}:\n{url}\n\nThank you for your business!")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Store: StoreConfig{
			Path: viper.GetString("STORE_PATH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Export: ExportConfig{
			Scale:      viper.GetFloat64("EXPORT_SCALE"),
			Quality:    viper.GetInt("EXPORT_QUALITY"),
			PageFormat: viper.GetString("EXPORT_PAGE_FORMAT"),
		},
		Share: ShareConfig{
			UploadURL:       viper.GetString("SHARE_UPLOAD_URL"),
			CountryCode:     viper.GetString("SHARE_COUNTRY_CODE"),
			MessageTemplate: viper.GetString("SHARE_MESSAGE_TEMPLATE"),
		},
	}
}
