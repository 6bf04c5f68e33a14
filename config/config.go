package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer APIServerConfigs `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	Session   SessionConfigs   `toml:"session"`
	Review    ReviewConfigs    `toml:"review"`
	Dashboard DashboardConfigs `toml:"dashboard"`
}

type DatabaseConfigs struct {
	// Driver is either sqlite or mysql.
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type APIServerConfigs struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

func (c APIServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`

	GitHub OAuth2Config `toml:"github"`
	Google OAuth2Config `toml:"google"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type OAuth2Config struct {
	Name         string `toml:"name"`
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

// Enabled reports whether the provider has client credentials.
func (c OAuth2Config) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type SessionConfigs struct {
	Name   string `toml:"name"`
	Secret string `toml:"secret"`
}

type ReviewConfigs struct {
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

type DashboardConfigs struct {
	RecentPostLimit int `toml:"recent_post_limit"`
	SuggestionLimit int `toml:"suggestion_limit"`
}

func Default() Configs {
	return Configs{
		Env:      "development",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver: "sqlite",
			DSN:    "codehub.db",
		},
		ApiServer: APIServerConfigs{
			Host:           "",
			Port:           "5000",
			AllowedOrigins: []string{"*"},
		},
		Auth: AuthConfigs{
			TokenSecret: "jwt-secret-key-here",
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 15 * time.Minute,
			},
			GitHub: OAuth2Config{
				Name:        "github",
				RedirectURL: "http://localhost:5000/authorize/github",
			},
			Google: OAuth2Config{
				Name:        "google",
				Issuer:      "https://accounts.google.com",
				RedirectURL: "http://localhost:5000/authorize/google",
			},
		},
		Session: SessionConfigs{
			Name:   "codehub_session",
			Secret: "your-secret-key-here",
		},
		Review: ReviewConfigs{
			Model:       "gpt-3.5-turbo",
			MaxTokens:   1000,
			Temperature: 0.3,
		},
		Dashboard: DashboardConfigs{
			RecentPostLimit: 5,
			SuggestionLimit: 5,
		},
	}
}

// Load starts from the defaults, decodes the toml file at path if it exists
// and finally applies the environment variables (a .env file is loaded into
// the environment first).
func Load(path string) (Configs, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	applyEnv(&cfg)

	if cfg.Auth.TokenSecret == "" {
		return cfg, errors.New("auth token secret is required")
	}

	return cfg, nil
}

func applyEnv(cfg *Configs) {
	setString(&cfg.Env, "CODEHUB_ENV")
	setString(&cfg.LogLevel, "CODEHUB_LOG_LEVEL")
	setString(&cfg.Database.Driver, "CODEHUB_DB_DRIVER")
	setString(&cfg.Database.DSN, "CODEHUB_DB_DSN")
	setString(&cfg.ApiServer.Host, "CODEHUB_HOST")
	setString(&cfg.ApiServer.Port, "PORT")
	setString(&cfg.Auth.TokenSecret, "JWT_SECRET_KEY")
	setString(&cfg.Session.Secret, "SECRET_KEY")
	setString(&cfg.Auth.GitHub.ClientID, "GITHUB_CLIENT_ID")
	setString(&cfg.Auth.GitHub.ClientSecret, "GITHUB_CLIENT_SECRET")
	setString(&cfg.Auth.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Auth.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.Review.APIKey, "OPENAI_API_KEY")
	setString(&cfg.Review.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.Review.Model, "OPENAI_MODEL")

	if v := os.Getenv("CODEHUB_TOKEN_EXPIRATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.AccessToken.Expiration = d
		}
	}

	if v := os.Getenv("OPENAI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Review.MaxTokens = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
