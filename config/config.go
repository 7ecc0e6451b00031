package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ProfileImageSize is the pixel size requested from the avatar service.
const ProfileImageSize = 48

type Server struct {
	Port    string   `yaml:"port"`
	Mode    string   `yaml:"mode"`
	Origins []string `yaml:"origins"`
}

type Database struct {
	User         string `yaml:"user"`
	Pass         string `yaml:"pass"`
	Host         string `yaml:"host"`
	Name         string `yaml:"name"`
	TLS          bool   `yaml:"tls"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// DSN builds the driver connection string. clientFoundRows makes
// RowsAffected report matched rows rather than changed rows, so no-op
// updates against an existing row are not mistaken for a miss.
func (d *Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=%t&parseTime=true&clientFoundRows=true",
		d.User, d.Pass, d.Host, d.Name, d.TLS)
}

type Session struct {
	Secret string `yaml:"secret"`
	TTL    string `yaml:"ttl"`
	Issuer string `yaml:"issuer"`
}

func (s *Session) TTLDuration() time.Duration {
	d, err := time.ParseDuration(s.TTL)
	if err != nil || d <= 0 {
		return 72 * time.Hour
	}
	return d
}

type OAuth struct {
	Provider     string `yaml:"provider"`
	ClientId     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
	AuthURL      string `yaml:"auth_url"`
	TokenURL     string `yaml:"token_url"`
	ProfileURL   string `yaml:"profile_url"`
}

type Storage struct {
	Bucket string `yaml:"bucket"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Session  Session  `yaml:"session"`
	OAuth    OAuth    `yaml:"oauth"`
	Storage  Storage  `yaml:"storage"`
	Logging  Logging  `yaml:"logging"`
}

// Load reads the optional YAML file at path, then overrides from the
// environment. A .env file is honored when present so local runs don't need
// exported variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	setDefaults(cfg)

	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	loadFromEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Server.Port = "8080"
	cfg.Server.Mode = "debug"
	cfg.Server.Origins = []string{"http://localhost:3000"}
	cfg.Database.MaxIdleConns = 50
	cfg.Database.MaxOpenConns = 50
	cfg.Database.TLS = true
	cfg.Session.TTL = "72h"
	cfg.Session.Issuer = "study-club"
	cfg.OAuth.Provider = "kakao"
	cfg.Logging.Level = "info"
}

func loadFromEnv(cfg *Config) {
	envStr("PORT", &cfg.Server.Port)
	envStr("GIN_MODE", &cfg.Server.Mode)
	if origins := os.Getenv("FE_ORIGINS"); origins != "" {
		cfg.Server.Origins = strings.Split(origins, ";")
	}
	envStr("DB_USER", &cfg.Database.User)
	envStr("DB_PASS", &cfg.Database.Pass)
	envStr("DB_HOST", &cfg.Database.Host)
	envStr("DB_NAME", &cfg.Database.Name)
	envBool("DB_TLS", &cfg.Database.TLS)
	envInt("DB_MAX_IDLE_CONNS", &cfg.Database.MaxIdleConns)
	envInt("DB_MAX_OPEN_CONNS", &cfg.Database.MaxOpenConns)
	envStr("SESSION_SECRET", &cfg.Session.Secret)
	envStr("SESSION_TTL", &cfg.Session.TTL)
	envStr("SESSION_ISSUER", &cfg.Session.Issuer)
	envStr("OAUTH_PROVIDER", &cfg.OAuth.Provider)
	envStr("OAUTH_CLIENT_ID", &cfg.OAuth.ClientId)
	envStr("OAUTH_CLIENT_SECRET", &cfg.OAuth.ClientSecret)
	envStr("OAUTH_REDIRECT_URL", &cfg.OAuth.RedirectURL)
	envStr("OAUTH_AUTH_URL", &cfg.OAuth.AuthURL)
	envStr("OAUTH_TOKEN_URL", &cfg.OAuth.TokenURL)
	envStr("OAUTH_PROFILE_URL", &cfg.OAuth.ProfileURL)
	envStr("STORAGE_BUCKET", &cfg.Storage.Bucket)
	envStr("LOG_LEVEL", &cfg.Logging.Level)
	envBool("LOG_PRETTY", &cfg.Logging.Pretty)
}

func validate(cfg *Config) error {
	var missing []string
	if cfg.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.Database.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if cfg.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if cfg.Session.Secret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func envStr(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
