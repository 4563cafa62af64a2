package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env string `mapstructure:"env"`

	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
		// Requests per minute allowed per client IP on public endpoints.
		PublicRateLimit int `mapstructure:"public_rate_limit"`
	} `mapstructure:"server"`

	Database struct {
		// "postgres" or "memory"
		Driver   string `mapstructure:"driver"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	// Optional MongoDB backend for the availability registry.
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	} `mapstructure:"mongo"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	SMS struct {
		APIKey     string  `mapstructure:"api_key"`
		BaseURL    string  `mapstructure:"base_url"`
		Route      string  `mapstructure:"route"`
		SenderID   string  `mapstructure:"sender_id"`
		TemplateID string  `mapstructure:"template_id"`
		CostPerSMS float64 `mapstructure:"cost_per_sms"`
		// Messages per second.
		Rate float64 `mapstructure:"rate"`
	} `mapstructure:"sms"`

	Generative struct {
		APIKey  string  `mapstructure:"api_key"`
		Model   string  `mapstructure:"model"`
		BaseURL string  `mapstructure:"base_url"`
		Rate    float64 `mapstructure:"rate"`
	} `mapstructure:"generative"`

	Storage struct {
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"storage"`

	Razorpay struct {
		KeyID     string `mapstructure:"key_id"`
		KeySecret string `mapstructure:"key_secret"`
	} `mapstructure:"razorpay"`

	Bootstrap struct {
		AdminName     string `mapstructure:"admin_name"`
		AdminPhone    string `mapstructure:"admin_phone"`
		AdminPassword string `mapstructure:"admin_password"`
	} `mapstructure:"bootstrap"`
}

// Load reads configs/config.yaml when present, then applies environment overrides.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configFile())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}

	applyEnvOverrides(&cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return &cfg, nil
}

func configFile() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	return "configs/config.yaml"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("server.public_rate_limit", 10)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "staffing_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("mongo.database", "staffing")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "staffing-backend")
	v.SetDefault("sms.base_url", "https://www.fast2sms.com/dev/bulkV2")
	v.SetDefault("sms.route", "q")
	v.SetDefault("sms.cost_per_sms", 5.0)
	v.SetDefault("sms.rate", 10.0)
	v.SetDefault("generative.model", "gemini-1.5-flash")
	v.SetDefault("generative.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("generative.rate", 1.0)
	v.SetDefault("storage.region", "auto")
	v.SetDefault("bootstrap.admin_name", "Administrator")
}

// applyEnvOverrides maps the flat variable names used by deployments onto the config.
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Mongo.URI, "MONGO_URI")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.SMS.APIKey, "FAST2SMS_API_KEY")
	setString(&cfg.Generative.APIKey, "GEMINI_API_KEY")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Razorpay.KeyID, "RAZORPAY_KEY_ID")
	setString(&cfg.Razorpay.KeySecret, "RAZORPAY_KEY_SECRET")
	setString(&cfg.Bootstrap.AdminPhone, "ADMIN_PHONE")
	setString(&cfg.Bootstrap.AdminPassword, "ADMIN_PASSWORD")

	// K8s service discovery for redis, same as the database
	if cfg.Redis.Addr == "" {
		if host := os.Getenv("REDIS_SERVICE_HOST"); host != "" {
			port := os.Getenv("REDIS_SERVICE_PORT")
			if port == "" {
				port = "6379"
			}
			cfg.Redis.Addr = host + ":" + port
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

// DatabaseDSN returns the postgres connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
