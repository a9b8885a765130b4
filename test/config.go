package test

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// POSTGRES_TEST_DSN points to a disposable database, the storage scenarios are skipped without it
	PostgresDSN string `envconfig:"POSTGRES_TEST_DSN"`
	// POSTGRES_TEST_DRIVER selects the adapter under test
	PostgresDriver string `envconfig:"POSTGRES_TEST_DRIVER" default:"pgx"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
