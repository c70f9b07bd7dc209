package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type Store interface {
	Driver() string
	CSVPath() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
}

type Database interface {
	MigrationDirectory() string
	DSN() string
}

type Attachment interface {
	Driver() string
	FSRoot() string
	S3Bucket() string
	S3Region() string
	S3Prefix() string
	S3Endpoint() string
	S3AccessKeyID() string
	S3SecretAccessKey() string
	S3PathStyle() bool
}

type Credentials interface {
	File() string
}

type Notifier interface {
	Driver() string
}

type Kafka interface {
	Brokers() []string
	ComponentRegisteredTopic() string
	ComponentRegisteredConsumerGroupID() string
	HandlerRetries() int
	HandlerRetryBackoff() time.Duration
	ComponentRegisteredProducerConfig() *sarama.Config
	ComponentRegisteredConsumerConfig() *sarama.Config
}

type Telegram interface {
	BotToken() string
	ChatIDs() []int64
}

type Logger interface {
	Level() string
	AsJSON() bool
}
