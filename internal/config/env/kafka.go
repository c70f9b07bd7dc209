package envconfig

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Brokers                 []string      `env:"KAFKA_BROKERS,required,notEmpty"`
	ComponentRegisteredName string        `env:"COMPONENT_REGISTERED_TOPIC_NAME" envDefault:"component.registered"`
	ConsumerGroupID         string        `env:"COMPONENT_REGISTERED_CONSUMER_GROUP_ID" envDefault:"component-notifier"`
	HandlerRetries          int           `env:"KAFKA_HANDLER_RETRIES" envDefault:"3"`
	HandlerRetryBackoff     time.Duration `env:"KAFKA_HANDLER_RETRY_BACKOFF" envDefault:"1s"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Brokers() []string                { return cfg.raw.Brokers }
func (cfg *kafka) ComponentRegisteredTopic() string { return cfg.raw.ComponentRegisteredName }
func (cfg *kafka) ComponentRegisteredConsumerGroupID() string {
	return cfg.raw.ConsumerGroupID
}

func (cfg *kafka) HandlerRetries() int                { return cfg.raw.HandlerRetries }
func (cfg *kafka) HandlerRetryBackoff() time.Duration { return cfg.raw.HandlerRetryBackoff }

func (cfg *kafka) ComponentRegisteredProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}

func (cfg *kafka) ComponentRegisteredConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}
