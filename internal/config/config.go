package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	App    App
	HTTP   HTTP
	DB     DB
	Auth   Auth
	Chain  Chain
	Logger Logger
	Voting Voting
}

type App struct {
	Environment string `env:"VOXEN_ENVIRONMENT" envDefault:"production"`
}

func (c App) IsDevEnvironment() bool {
	return c.Environment == "dev"
}

type HTTP struct {
	Addr            string        `env:"VOXEN_HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CookieDomain    string        `env:"COOKIE_DOMAIN"`
	CookieSameSite  string        `env:"COOKIE_SAMESITE" envDefault:"lax"`
	ShutdownTimeout time.Duration `env:"VOXEN_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

func (c HTTP) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

type DB struct {
	Host            string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string `env:"POSTGRES_PORT" envDefault:"5432"`
	User            string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password        string `env:"POSTGRES_PASSWORD"`
	Name            string `env:"POSTGRES_DB" envDefault:"voxen"`
	SSLMode         string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	ConnectAttempts uint   `env:"POSTGRES_CONNECT_ATTEMPTS" envDefault:"5"`
}

func (c DB) ConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type Auth struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTTL      time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL     time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
	NonceTTL       time.Duration `env:"WALLET_NONCE_TTL" envDefault:"5m"`
	GoogleClientID string        `env:"GOOGLE_CLIENT_ID"`
}

type Chain struct {
	RPCURL       string `env:"CHAIN_RPC_URL"`
	DialAttempts uint   `env:"CHAIN_DIAL_ATTEMPTS" envDefault:"5"`
}

type Logger struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type Voting struct {
	// TrustClientVotePower accepts the vote_power sent with a ballot instead
	// of the voter's membership voting power.
	TrustClientVotePower bool `env:"VOXEN_VOTING_TRUST_CLIENT_VOTE_POWER" envDefault:"false"`
	DefaultPageSize      int  `env:"VOXEN_DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize          int  `env:"VOXEN_MAX_PAGE_SIZE" envDefault:"100"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	return Parse()
}

func Parse() (Config, error) {
	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.Voting.DefaultPageSize <= 0 || config.Voting.MaxPageSize < config.Voting.DefaultPageSize {
		return Config{}, fmt.Errorf("invalid page sizes: default %d, max %d", config.Voting.DefaultPageSize, config.Voting.MaxPageSize)
	}

	return config, nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c Config) ValidateServer() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
