package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Render   RenderConfig   `mapstructure:"render"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// AssetsConfig locates the static assets fetched at render time. Values may be
// http(s) URLs or local file paths.
type AssetsConfig struct {
	FontURL      string        `mapstructure:"font_url"`
	EmblemURL    string        `mapstructure:"emblem_url"`    // Optional default emblem for synthesized documents
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // Seconds
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`     // Hours, shared Redis tier only
	CachePrefix  string        `mapstructure:"cache_prefix"`
	WarmOnStart  bool          `mapstructure:"warm_on_start"`
}

type RenderConfig struct {
	PageSize        string `mapstructure:"page_size"` // "a4" or "letter"
	Timezone        string `mapstructure:"timezone"`  // Clock used for default dates
	LocalizedDigits bool   `mapstructure:"localized_digits"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig guards the document API. An empty JWTSecret disables auth.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewConfig() (*Config, error) {
	return Load("")
}

// Load reads configuration from file, or from config.yaml in . or ./config when
// file is empty. A missing default file is not an error; defaults and
// environment variables still apply.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Convert plain numbers to durations
	cfg.Assets.FetchTimeout = cfg.Assets.FetchTimeout * time.Second
	cfg.Assets.CacheTTL = cfg.Assets.CacheTTL * time.Hour

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "saraban-stamp")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.env", "development")

	v.SetDefault("assets.font_url", "https://raw.githubusercontent.com/google/fonts/main/ofl/sarabun/Sarabun-Regular.ttf")
	v.SetDefault("assets.fetch_timeout", 10)
	v.SetDefault("assets.cache_ttl", 24)
	v.SetDefault("assets.cache_prefix", "saraban:asset:")
	v.SetDefault("assets.warm_on_start", true)

	v.SetDefault("render.page_size", "a4")
	v.SetDefault("render.timezone", "Asia/Bangkok")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("auth.issuer", "saraban")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Location is the render clock's time zone, falling back to UTC+7.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Render.Timezone); err == nil && c.Render.Timezone != "" {
		return loc
	}
	return time.FixedZone("ICT", 7*60*60)
}
