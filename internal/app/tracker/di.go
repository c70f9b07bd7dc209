package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	attachfs "github.com/RamonCharlles/Gestao-componentes/internal/attachment/fs"
	attachs3 "github.com/RamonCharlles/Gestao-componentes/internal/attachment/s3"
	"github.com/RamonCharlles/Gestao-componentes/internal/config"
	envconfig "github.com/RamonCharlles/Gestao-componentes/internal/config/env"
	"github.com/RamonCharlles/Gestao-componentes/internal/converter"
	"github.com/RamonCharlles/Gestao-componentes/internal/credential"
	"github.com/RamonCharlles/Gestao-componentes/internal/lifecycle"
	"github.com/RamonCharlles/Gestao-componentes/internal/repository/csvfile"
	repository "github.com/RamonCharlles/Gestao-componentes/internal/repository/postgres"
	service "github.com/RamonCharlles/Gestao-componentes/internal/service/component"
	"github.com/RamonCharlles/Gestao-componentes/internal/service/export"
	compproducer "github.com/RamonCharlles/Gestao-componentes/internal/service/producer/component"
	thttp "github.com/RamonCharlles/Gestao-componentes/internal/transport/http/component/v1"
	"github.com/RamonCharlles/Gestao-componentes/platform/closer"
	"github.com/RamonCharlles/Gestao-componentes/platform/db/migrator"
	"github.com/RamonCharlles/Gestao-componentes/platform/kafka"
	"github.com/RamonCharlles/Gestao-componentes/platform/kafka/producer"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type Converter interface {
	compproducer.Converter
}

type ComponentHandler interface {
	Routes(r chi.Router)
}

type di struct {
	ctrl *lifecycle.Controller

	dbPool      *pgxpool.Pool
	migrator    *migrator.Migrator
	recordStore service.RecordStore

	attachments service.AttachmentStore
	credentials service.CredentialStore

	conv                        Converter
	syncProducer                sarama.SyncProducer
	componentRegisteredProducer kafka.Producer
	notifier                    service.Notifier

	service  thttp.ComponentService
	exporter thttp.ExportService
	handler  ComponentHandler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) Controller(_ context.Context) *lifecycle.Controller {
	if d.ctrl == nil {
		d.ctrl = lifecycle.New()
	}

	return d.ctrl
}

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) RecordStore(ctx context.Context) service.RecordStore {
	if d.recordStore == nil {
		switch config.C().Store.Driver() {
		case envconfig.StoreDriverPostgres:
			d.recordStore = repository.NewComponentRepository(d.DBPool(ctx))
		default:
			d.recordStore = csvfile.NewStore(config.C().Store.CSVPath())
		}
	}

	return d.recordStore
}

func (d *di) AttachmentStore(ctx context.Context) service.AttachmentStore {
	if d.attachments == nil {
		cfg := config.C().Attachment

		switch cfg.Driver() {
		case envconfig.AttachmentDriverS3:
			s, err := attachs3.NewStore(ctx, attachs3.Config{
				Region:          cfg.S3Region(),
				Bucket:          cfg.S3Bucket(),
				Prefix:          cfg.S3Prefix(),
				Endpoint:        cfg.S3Endpoint(),
				AccessKeyID:     cfg.S3AccessKeyID(),
				SecretAccessKey: cfg.S3SecretAccessKey(),
				PathStyle:       cfg.S3PathStyle(),
			})
			if err != nil {
				panic(fmt.Sprintf("failed to create s3 attachment store: %v\n", err))
			}
			d.attachments = s
		default:
			s, err := attachfs.NewStore(cfg.FSRoot())
			if err != nil {
				panic(fmt.Sprintf("failed to create attachment directory %s: %v\n", cfg.FSRoot(), err))
			}
			d.attachments = s
		}
	}

	return d.attachments
}

func (d *di) CredentialStore(_ context.Context) service.CredentialStore {
	if d.credentials == nil {
		s, err := credential.LoadFile(config.C().Credentials.File())
		if err != nil {
			panic(fmt.Sprintf("failed to load credentials: %v\n", err))
		}
		d.credentials = s
	}

	return d.credentials
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ComponentRegisteredProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) ComponentRegisteredProducer(ctx context.Context) kafka.Producer {
	if d.componentRegisteredProducer == nil {
		d.componentRegisteredProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.ComponentRegisteredTopic(),
			logger.L(),
		)
	}

	return d.componentRegisteredProducer
}

func (d *di) Notifier(ctx context.Context) service.Notifier {
	if d.notifier == nil {
		switch config.C().Notifier.Driver() {
		case envconfig.NotifierDriverKafka:
			d.notifier = compproducer.NewComponentProducer(
				d.ComponentRegisteredProducer(ctx),
				d.KafkaConverter(ctx),
			)
		default:
			d.notifier = compproducer.NewLogNotifier()
		}
	}

	return d.notifier
}

func (d *di) ComponentService(ctx context.Context) thttp.ComponentService {
	if d.service == nil {
		d.service = service.NewComponentService(
			d.RecordStore(ctx),
			d.CredentialStore(ctx),
			d.AttachmentStore(ctx),
			d.Notifier(ctx),
			d.Controller(ctx),
			config.C().Store.ReadTimeout(),
			config.C().Store.WriteTimeout(),
		)
	}

	return d.service
}

func (d *di) ExportService(ctx context.Context) thttp.ExportService {
	if d.exporter == nil {
		d.exporter = export.NewExportService(d.Controller(ctx))
	}

	return d.exporter
}

func (d *di) ComponentHandler(ctx context.Context) ComponentHandler {
	if d.handler == nil {
		d.handler = thttp.NewComponentHandler(
			d.ComponentService(ctx),
			d.ExportService(ctx),
		)
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}

// StoreCheck fails when the record store cannot be read back.
func (d *di) StoreCheck(ctx context.Context) func(context.Context) error {
	store := d.RecordStore(ctx)
	timeout := config.C().Store.ReadTimeout()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		_, err := store.Load(ctx)
		return err
	}
}
