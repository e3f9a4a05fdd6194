package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "SELLERMETRICS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Upstream  UpstreamConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig `split_words:"true"`
}

// Load reads an optional .env file and then the SELLERMETRICS_* environment.
// Variables already set in the environment win over the file. Keys are the
// split field names, e.g. SELLERMETRICS_UPSTREAM_FAN_OUT_LIMIT.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid upstream base url %q", c.Upstream.BaseURL)
	}
	if c.Upstream.FanOutLimit <= 0 {
		return errors.New("upstream fan-out limit must be positive")
	}
	return nil
}

type AppConfig struct {
	Env       string `split_words:"true" default:"dev"`
	Port      string `split_words:"true" default:"8080"`
	LogLevel  string `split_words:"true" default:"info"`
	LogFormat string `split_words:"true" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Host            string        `split_words:"true" default:"localhost"`
	Port            string        `split_words:"true" default:"5432"`
	User            string        `split_words:"true" required:"true"`
	Password        string        `split_words:"true"`
	Name            string        `split_words:"true" required:"true"`
	SSLMode         string        `split_words:"true" default:"disable"`
	MaxOpenConns    int           `split_words:"true" default:"25"`
	MaxIdleConns    int           `split_words:"true" default:"25"`
	ConnMaxLifetime time.Duration `split_words:"true" default:"5m"`
}

func (d DBConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return dsn.String()
}

type RedisConfig struct {
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
}

type JWTConfig struct {
	Secret string `split_words:"true" required:"true"`
	Issuer string `split_words:"true" default:"sellermetrics"`
}

type UpstreamConfig struct {
	BaseURL     string        `split_words:"true" required:"true"`
	Token       string        `split_words:"true"`
	Timeout     time.Duration `split_words:"true" default:"10s"`
	FanOutLimit int           `split_words:"true" default:"8"`
}

type CacheConfig struct {
	TTL time.Duration `split_words:"true" default:"5m"`
}

type RateLimitConfig struct {
	Requests int           `split_words:"true" default:"100"`
	Window   time.Duration `split_words:"true" default:"1m"`
}
