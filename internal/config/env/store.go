package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreDriverCSV      = "csv"
	StoreDriverPostgres = "postgres"
)

type storeEnv struct {
	Driver       string        `env:"STORE_DRIVER" envDefault:"csv"`
	CSVPath      string        `env:"STORE_CSV_PATH" envDefault:"registros_componentes.csv"`
	ReadTimeout  time.Duration `env:"STORE_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"STORE_WRITE_TIMEOUT" envDefault:"10s"`
}

type store struct {
	raw storeEnv
}

func NewStoreConfig() (*store, error) {
	var raw storeEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	switch raw.Driver {
	case StoreDriverCSV, StoreDriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", raw.Driver)
	}

	return &store{raw: raw}, nil
}

func (cfg *store) Driver() string              { return cfg.raw.Driver }
func (cfg *store) CSVPath() string             { return cfg.raw.CSVPath }
func (cfg *store) ReadTimeout() time.Duration  { return cfg.raw.ReadTimeout }
func (cfg *store) WriteTimeout() time.Duration { return cfg.raw.WriteTimeout }
