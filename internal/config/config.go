package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigPath       = "config.toml"
	DefaultHTTPAddr         = ":8080"
	DefaultPGHost           = "127.0.0.1"
	DefaultPGPort           = 5432
	DefaultPGUser           = "postgres"
	DefaultPGDatabase       = "waypoint"
	DefaultPGSSLMode        = "disable"
	DefaultSearchTimeoutSec = 4
	DefaultImageCacheSize   = 256
	DefaultRetentionDays    = 30
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Postgres PostgresConfig `toml:"postgres"`
	Images   ImagesConfig   `toml:"images"`
	Share    ShareConfig    `toml:"share"`
	Cache    CacheConfig    `toml:"cache"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

type ImagesConfig struct {
	PexelsAPIKey    string `toml:"pexels_api_key"`
	PexelsBaseURL   string `toml:"pexels_base_url"`
	UnsplashAPIKey  string `toml:"unsplash_api_key"`
	UnsplashBaseURL string `toml:"unsplash_base_url"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	CacheSize       int    `toml:"cache_size"`
}

type ShareConfig struct {
	PublicBaseURL string `toml:"public_base_url"`
}

type CacheConfig struct {
	RetentionDays int `toml:"retention_days"`
}

// DSN returns the pgx connection string.
func (c PostgresConfig) DSN() string {
	return c.connURL("postgres")
}

// MigrateURL returns the connection string for the migrate pgx5 driver.
func (c PostgresConfig) MigrateURL() string {
	return c.connURL("pgx5")
}

func (c PostgresConfig) connURL(scheme string) string {
	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	query := url.Values{}
	query.Set("sslmode", c.SSLMode)
	u.RawQuery = query.Encode()
	return u.String()
}

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		Images: ImagesConfig{
			TimeoutSeconds: DefaultSearchTimeoutSec,
			CacheSize:      DefaultImageCacheSize,
		},
		Cache: CacheConfig{
			RetentionDays: DefaultRetentionDays,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
