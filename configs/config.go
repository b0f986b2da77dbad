package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Port        string `mapstructure:"port"`
	FrontendURL string `mapstructure:"frontend_url"`
	CookieName  string `mapstructure:"cookie_name"`
	JWTSecret   string `mapstructure:"jwt_secret"`
}

type Database struct {
	URL string `mapstructure:"url"`
}

type Redis struct {
	Addr string `mapstructure:"addr"`
}

type Google struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type LLM struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	ImageURL       string `mapstructure:"image_url"`
	ImageModel     string `mapstructure:"image_model"`
	MaxConcurrency int64  `mapstructure:"max_concurrency"`
}

type R2 struct {
	AccountID  string `mapstructure:"account_id"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	BucketName string `mapstructure:"bucket_name"`
}

type Minio struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Storage selects the blob backend for generated images. PublicURL is the
// base that object keys are appended to when building image links.
type Storage struct {
	Driver    string `mapstructure:"driver"`
	PublicURL string `mapstructure:"public_url"`
	R2        R2     `mapstructure:"r2"`
	Minio     Minio  `mapstructure:"minio"`
}

type Platforms struct {
	Mode              string `mapstructure:"mode"`
	FacebookURL       string `mapstructure:"facebook_url"`
	TikTokURL         string `mapstructure:"tiktok_url"`
	GoogleBusinessURL string `mapstructure:"google_business_url"`
	BloggerURL        string `mapstructure:"blogger_url"`
}

type Scheduler struct {
	Interval             time.Duration `mapstructure:"interval"`
	ReviewInterval       time.Duration `mapstructure:"review_interval"`
	TokenRefreshInterval time.Duration `mapstructure:"token_refresh_interval"`
}

type Review struct {
	TargetURL string `mapstructure:"target_url"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server      Server    `mapstructure:"server"`
	Database    Database  `mapstructure:"database"`
	Redis       Redis     `mapstructure:"redis"`
	Google      Google    `mapstructure:"google"`
	LLM         LLM       `mapstructure:"llm"`
	Storage     Storage   `mapstructure:"storage"`
	Platforms   Platforms `mapstructure:"platforms"`
	Scheduler   Scheduler `mapstructure:"scheduler"`
	Review      Review    `mapstructure:"review"`
	Log         Log       `mapstructure:"log"`
	SecretKey   string    `mapstructure:"secret_key"`
	OwnerOpenID string    `mapstructure:"owner_open_id"`
}

// LoadConfig reads CONFIG_FILE when set and then overlays environment
// variables, so SERVER_PORT overrides server.port and so on.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.frontend_url", "http://localhost:5173")
	v.SetDefault("server.cookie_name", "autopost_session")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_url", "http://localhost:3000/api/v1/auth/google/callback")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.image_url", "https://api.openai.com/v1/images/generations")
	v.SetDefault("llm.image_model", "dall-e-3")
	v.SetDefault("llm.max_concurrency", 4)
	v.SetDefault("storage.driver", "r2")
	v.SetDefault("storage.public_url", "")
	v.SetDefault("storage.r2.account_id", "")
	v.SetDefault("storage.r2.access_key", "")
	v.SetDefault("storage.r2.secret_key", "")
	v.SetDefault("storage.r2.bucket_name", "")
	v.SetDefault("storage.minio.endpoint", "localhost:9000")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "autopost")
	v.SetDefault("storage.minio.use_ssl", false)
	v.SetDefault("platforms.mode", "real")
	v.SetDefault("platforms.facebook_url", "https://graph.facebook.com/v18.0")
	v.SetDefault("platforms.tiktok_url", "https://open.tiktokapis.com/v1")
	v.SetDefault("platforms.google_business_url", "https://mybusiness.googleapis.com/v4")
	v.SetDefault("platforms.blogger_url", "")
	v.SetDefault("scheduler.interval", time.Minute)
	v.SetDefault("scheduler.review_interval", time.Hour)
	v.SetDefault("scheduler.token_refresh_interval", 10*time.Minute)
	v.SetDefault("review.target_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("secret_key", "")
	v.SetDefault("owner_open_id", "")
	v.SetDefault("config_file", "")
}

func (c *Config) validate() error {
	if n := len(c.SecretKey); n != 0 && n != 16 && n != 24 && n != 32 {
		return fmt.Errorf("secret_key must be 16, 24 or 32 bytes, got %d", n)
	}
	if c.Scheduler.Interval <= 0 || c.Scheduler.ReviewInterval <= 0 || c.Scheduler.TokenRefreshInterval <= 0 {
		return fmt.Errorf("scheduler intervals must be positive")
	}
	if c.LLM.MaxConcurrency <= 0 {
		c.LLM.MaxConcurrency = 1
	}
	switch c.Storage.Driver {
	case "r2", "minio":
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	switch c.Platforms.Mode {
	case "real", "stub":
	default:
		return fmt.Errorf("unsupported platforms mode %q", c.Platforms.Mode)
	}
	return nil
}
