package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	NotifierDriverKafka = "kafka"
	NotifierDriverLog   = "log"
)

type notifierEnv struct {
	Driver string `env:"NOTIFIER_DRIVER" envDefault:"log"`
}

type notifier struct {
	raw notifierEnv
}

func NewNotifierConfig() (*notifier, error) {
	var raw notifierEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	switch raw.Driver {
	case NotifierDriverKafka, NotifierDriverLog:
	default:
		return nil, fmt.Errorf("unsupported NOTIFIER_DRIVER %q", raw.Driver)
	}

	return &notifier{raw: raw}, nil
}

func (cfg *notifier) Driver() string { return cfg.raw.Driver }
