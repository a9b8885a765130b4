package internal

import (
	"fmt"
	"io/fs"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"stallion/errors"
	"stallion/scraping"
	"stallion/supabase"
)

const (
	DriverPGX  = "pgx"
	DriverSQLX = "sqlx"
)

type Config struct {
	// Required, checked by LoadConfig so that a missing one is reported as errors.ErrMissingCredential.
	SupabaseURL            string `env:"NEXT_PUBLIC_SUPABASE_URL"`
	SupabaseAnonKey        string `env:"NEXT_PUBLIC_SUPABASE_ANON_KEY"`
	SupabaseServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`

	// PostgresDSN switches storage from the Supabase REST api to a direct connection.
	PostgresDSN    string `env:"POSTGRES_DSN"`
	PostgresDriver string `env:"POSTGRES_DRIVER,default=pgx"`

	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath string `env:"BADGER_FILEPATH,default=data/badger"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,default=data/bluge"`
	OutputDir      string `env:"OUTPUT_DIR,default=output"`

	ScraperBaseURL         string        `env:"SCRAPER_BASE_URL,default=https://db.netkeiba.com"`
	ScraperUserAgent       string        `env:"SCRAPER_USER_AGENT"`
	ScraperRequestInterval time.Duration `env:"SCRAPER_REQUEST_INTERVAL,default=1s"`
	ScraperTimeout         time.Duration `env:"SCRAPER_TIMEOUT,default=15s"`
	ScraperWorkers         int           `env:"SCRAPER_WORKERS,default=2"`

	PageCacheTTL time.Duration `env:"PAGE_CACHE_TTL,default=24h"`
	ClaimTTL     time.Duration `env:"CLAIM_TTL,default=30m"`
	// RedisAddr shares claims between hosts, the local badger store is used otherwise.
	RedisAddr string `env:"REDIS_ADDR"`

	// InspectPort serves the badger inspector on localhost, 0 disables it.
	InspectPort int `env:"INSPECT_PORT,default=0"`

	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=5s"`
	ReportInterval  time.Duration `env:"REPORT_INTERVAL,default=1s"`
}

// LoadConfig reads the .env files found, then the environment. Variables already set win over the files.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.Credentials().Validate(); err != nil {
		return Config{}, err
	}
	switch config.PostgresDriver {
	case DriverPGX, DriverSQLX:
	default:
		return Config{}, fmt.Errorf("POSTGRES_DRIVER must be %s or %s, got %q", DriverPGX, DriverSQLX, config.PostgresDriver)
	}
	if config.ScraperWorkers < 1 {
		return Config{}, fmt.Errorf("SCRAPER_WORKERS must be positive, got %d", config.ScraperWorkers)
	}
	return config, nil
}

func (c Config) Credentials() supabase.Credentials {
	return supabase.Credentials{
		URL:            c.SupabaseURL,
		AnonKey:        c.SupabaseAnonKey,
		ServiceRoleKey: c.SupabaseServiceRoleKey,
	}
}

func (c Config) Scraping() scraping.Config {
	cfg := scraping.DefaultConfig()
	cfg.BaseURL = strings.TrimRight(c.ScraperBaseURL, "/")
	if c.ScraperUserAgent != "" {
		cfg.UserAgent = c.ScraperUserAgent
	}
	cfg.Interval = c.ScraperRequestInterval
	cfg.Timeout = c.ScraperTimeout
	return cfg
}

func (c Config) UsePostgres() bool {
	return strings.TrimSpace(c.PostgresDSN) != ""
}
