package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-telegram/bot"

	tgclient "github.com/RamonCharlles/Gestao-componentes/internal/client/http/telegram"
	"github.com/RamonCharlles/Gestao-componentes/internal/config"
	"github.com/RamonCharlles/Gestao-componentes/internal/converter"
	compconsumer "github.com/RamonCharlles/Gestao-componentes/internal/service/consumer/component"
	service "github.com/RamonCharlles/Gestao-componentes/internal/service/telegram"
	"github.com/RamonCharlles/Gestao-componentes/platform/closer"
	"github.com/RamonCharlles/Gestao-componentes/platform/kafka"
	"github.com/RamonCharlles/Gestao-componentes/platform/kafka/consumer"
	"github.com/RamonCharlles/Gestao-componentes/platform/kafka/middleware"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type TelegramService interface {
	compconsumer.ComponentRegisteredNotifier
	AddChatID(ctx context.Context, chatID int64)
}

type ComponentRegisteredConsumer interface {
	RunComponentRegisteredConsume(ctx context.Context) error
}

type di struct {
	converter compconsumer.ComponentRegisteredConverter

	consumerGroup               sarama.ConsumerGroup
	kafkaConsumer               kafka.Consumer
	componentRegisteredConsumer ComponentRegisteredConsumer

	tgBot     *bot.Bot
	tgClient  service.MessageSender
	tgService TelegramService
}

func NewDI() *di { return &di{} }

func (d *di) KafkaConverter(_ context.Context) compconsumer.ComponentRegisteredConverter {
	if d.converter == nil {
		d.converter = converter.NewKafkaConverter()
	}

	return d.converter
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.N()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ComponentRegisteredConsumerGroupID(),
			cfg.Kafka.ComponentRegisteredConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create component.registered consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka component.registered consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) KafkaConsumer(ctx context.Context) kafka.Consumer {
	if d.kafkaConsumer == nil {
		d.kafkaConsumer = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.N().Kafka.ComponentRegisteredTopic(),
			},
			logger.L(),
			consumer.WithMiddlewares(
				middleware.Recovery(logger.L()),
				middleware.Logging(logger.L()),
			),
			consumer.WithRetry(
				config.N().Kafka.HandlerRetries(),
				config.N().Kafka.HandlerRetryBackoff(),
			),
		)
	}

	return d.kafkaConsumer
}

func (d *di) ComponentRegisteredConsumer(ctx context.Context) ComponentRegisteredConsumer {
	if d.componentRegisteredConsumer == nil {
		d.componentRegisteredConsumer = compconsumer.NewComponentRegisteredConsumer(
			d.KafkaConsumer(ctx),
			d.KafkaConverter(ctx),
			d.TelegramService(ctx),
		)
	}

	return d.componentRegisteredConsumer
}

func (d *di) TelegramBot(_ context.Context) *bot.Bot {
	if d.tgBot == nil {
		b, err := bot.New(config.N().Telegram.BotToken())
		if err != nil {
			panic(fmt.Sprintf("failed to create telegram bot: %s\n", err.Error()))
		}
		closer.AddNamed("Telegram Bot", func(ctx context.Context) error {
			_, err := b.Close(ctx)
			return err
		})

		d.tgBot = b
	}

	return d.tgBot
}

func (d *di) TelegramClient(ctx context.Context) service.MessageSender {
	if d.tgClient == nil {
		d.tgClient = tgclient.NewClient(d.TelegramBot(ctx))
	}

	return d.tgClient
}

func (d *di) TelegramService(ctx context.Context) TelegramService {
	if d.tgService == nil {
		d.tgService = service.NewTelegramService(
			d.TelegramClient(ctx),
			config.N().Telegram.ChatIDs()...,
		)
	}

	return d.tgService
}
