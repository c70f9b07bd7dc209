package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/RamonCharlles/Gestao-componentes/internal/config/env"
)

var (
	cfg         *config
	notifierCfg *notifierConfig
)

type config struct {
	Server      Server
	Store       Store
	Attachment  Attachment
	Credentials Credentials
	Notifier    Notifier
	Logger      Logger
	// Set only for STORE_DRIVER=postgres.
	Postgres Database
	// Set only for NOTIFIER_DRIVER=kafka.
	Kafka Kafka
}

type notifierConfig struct {
	Kafka    Kafka
	Telegram Telegram
	Logger   Logger
}

// Load reads the tracker configuration.
func Load(path ...string) error {
	const op = "config.Load"

	if err := loadDotenv(path...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	storeCfg, err := envconfig.NewStoreConfig()
	if err != nil {
		return fmt.Errorf("%s Store: %w", op, err)
	}

	attachmentCfg, err := envconfig.NewAttachmentConfig()
	if err != nil {
		return fmt.Errorf("%s Attachment: %w", op, err)
	}

	credentialsCfg, err := envconfig.NewCredentialsConfig()
	if err != nil {
		return fmt.Errorf("%s Credentials: %w", op, err)
	}

	notifCfg, err := envconfig.NewNotifierConfig()
	if err != nil {
		return fmt.Errorf("%s Notifier: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	c := &config{
		Server:      serverCfg,
		Store:       storeCfg,
		Attachment:  attachmentCfg,
		Credentials: credentialsCfg,
		Notifier:    notifCfg,
		Logger:      loggerCfg,
	}

	if storeCfg.Driver() == envconfig.StoreDriverPostgres {
		postgresCfg, err := envconfig.NewPostgresConfig()
		if err != nil {
			return fmt.Errorf("%s Postgres: %w", op, err)
		}
		c.Postgres = postgresCfg
	}

	if notifCfg.Driver() == envconfig.NotifierDriverKafka {
		kafkaCfg, err := envconfig.NewKafkaConfig()
		if err != nil {
			return fmt.Errorf("%s Kafka: %w", op, err)
		}
		c.Kafka = kafkaCfg
	}

	cfg = c
	return nil
}

// LoadNotifier reads the configuration of the notification consumer.
func LoadNotifier(path ...string) error {
	const op = "config.LoadNotifier"

	if err := loadDotenv(path...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kafkaCfg, err := envconfig.NewKafkaConfig()
	if err != nil {
		return fmt.Errorf("%s Kafka: %w", op, err)
	}

	telegramCfg, err := envconfig.NewTelegramConfig()
	if err != nil {
		return fmt.Errorf("%s Telegram: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	notifierCfg = &notifierConfig{
		Kafka:    kafkaCfg,
		Telegram: telegramCfg,
		Logger:   loggerCfg,
	}

	return nil
}

func C() *config { return cfg }

func N() *notifierConfig { return notifierCfg }

func loadDotenv(path ...string) error {
	if !shouldLoadDotenv() {
		return nil
	}
	if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
