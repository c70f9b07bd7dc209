package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/RamonCharlles/Gestao-componentes/internal/config"
	envconfig "github.com/RamonCharlles/Gestao-componentes/internal/config/env"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	service "github.com/RamonCharlles/Gestao-componentes/internal/service/component"
	"github.com/RamonCharlles/Gestao-componentes/internal/transport/http/health"
	thttpmw "github.com/RamonCharlles/Gestao-componentes/internal/transport/http/middleware"
	"github.com/RamonCharlles/Gestao-componentes/platform/closer"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initTables,
		a.initStore,
		a.initServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) initTables(ctx context.Context) error {
	if config.C().Store.Driver() != envconfig.StoreDriverPostgres {
		return nil
	}

	if err := a.di.Migrator(ctx).Up(); err != nil {
		logger.Error(ctx, "failed to apply migrations", logger.ErrorF(err))
		return err
	}
	return nil
}

// initStore refuses to start on a store that cannot be decoded.
func (a *app) initStore(ctx context.Context) error {
	records, err := loadedRecords(ctx, a.di.RecordStore(ctx), config.C().Store.ReadTimeout())
	if err != nil {
		logger.Error(ctx, "failed to load record store", logger.ErrorF(err))
		return fmt.Errorf("initial load: %w", err)
	}

	logger.Info(ctx, "record store loaded",
		logger.String("driver", config.C().Store.Driver()),
		logger.Int("records", len(records)),
	)
	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		middleware.RequestID,
		thttpmw.Logging,
		thttpmw.Metrics,
		middleware.Recoverer,
	)

	a.di.ComponentHandler(ctx).Routes(r)

	r.Handle("/health", health.NewHealthCheck(a.di.StoreCheck(ctx)))
	r.Handle("/metrics", promhttp.Handler())

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 component tracker listening",
			logger.String("address", config.C().Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()

		//nolint:contextcheck
		sdCtx, cancel := context.WithTimeout(context.Background(), config.C().Server.ShutdownTimeout())
		defer cancel()

		logger.Info(sdCtx, "🛑 Server shutdown...")
		return a.server.Shutdown(sdCtx)
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

func loadedRecords(ctx context.Context, store service.RecordStore, timeout time.Duration) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return store.Load(ctx)
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Server stopped")
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}
