package envconfig

import "github.com/caarlos0/env/v11"

type credentialsEnv struct {
	File string `env:"CREDENTIALS_FILE,required"`
}

type credentials struct {
	raw credentialsEnv
}

func NewCredentialsConfig() (*credentials, error) {
	var raw credentialsEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &credentials{raw: raw}, nil
}

func (cfg *credentials) File() string { return cfg.raw.File }
