package cli

import (
	"context"
	"fmt"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/internal/infrastructure/database/postgres"
	"github.com/turtacn/molgen/internal/infrastructure/database/postgres/repositories"
	rediscache "github.com/turtacn/molgen/internal/infrastructure/database/redis"
	"github.com/turtacn/molgen/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/molgen/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molgen/internal/infrastructure/rendering"
	miniostore "github.com/turtacn/molgen/internal/infrastructure/storage/minio"
	"github.com/turtacn/molgen/internal/interfaces/http/handlers"
)

// BootstrapOptions selects how App wiring treats the optional infrastructure.
type BootstrapOptions struct {
	// Strict fails the bootstrap when an enabled component cannot be reached.
	// Otherwise the component is skipped with a warning.
	Strict bool
	// Text and Image are the display regions the presenter writes to.
	Text  molgen.TextRegion
	Image molgen.ImageRegion
}

// App is the wired generation stack shared by the commands.
type App struct {
	Config    *config.Config
	Logger    logging.Logger
	Presenter *molgen.Presenter
	Service   molgen.Service

	Collector *prom.Collector
	Metrics   *prom.AppMetrics
	Images    *miniostore.ImageStore

	checkers []handlers.HealthChecker
	closers  []func() error
}

// Bootstrap builds the renderer, presenter and service, attaching each
// enabled infrastructure component.
func Bootstrap(ctx context.Context, cfg *config.Config, log logging.Logger, opts BootstrapOptions) (*App, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	app := &App{Config: cfg, Logger: log}

	renderer, err := rendering.NewPNGRenderer(cfg.Render, log)
	if err != nil {
		return nil, err
	}
	app.Presenter = molgen.NewPresenter(opts.Text, opts.Image, renderer)
	deps := molgen.Dependencies{
		Builder:   molgen.NewBuilder(log),
		Presenter: app.Presenter,
		Logger:    log,
	}

	// optional reports an unreachable component, failing in strict mode.
	optional := func(component string, err error) error {
		if opts.Strict {
			return fmt.Errorf("%s: %w", component, err)
		}
		log.Warn("Component unavailable, continuing without it",
			logging.String("component", component), logging.Err(err))
		return nil
	}

	if cfg.Metrics.Enabled {
		collector, err := prom.NewCollector(prom.ConfigFrom(cfg.Metrics))
		if err != nil {
			return nil, err
		}
		app.Collector = collector
		app.Metrics = prom.NewAppMetrics(collector)
		deps.Metrics = app.Metrics
	}

	if cfg.Redis.Enabled {
		client, err := rediscache.NewClient(cfg.Redis, log)
		if err != nil {
			if err := optional("redis", err); err != nil {
				return nil, app.closeWith(err)
			}
		} else {
			app.addCloser(client.Close)
			app.checkers = append(app.checkers, handlers.CheckFunc("redis", client.Ping))
			deps.Cache = rediscache.NewResultCache(client, log)
		}
	}

	if cfg.MinIO.Enabled {
		client, err := miniostore.NewClient(cfg.MinIO, log)
		if err != nil {
			if err := optional("minio", err); err != nil {
				return nil, app.closeWith(err)
			}
		} else {
			app.addCloser(client.Close)
			app.checkers = append(app.checkers, handlers.CheckFunc("minio", client.HealthCheck))
			app.Images = miniostore.NewImageStore(client, log)
			deps.Images = app.Images
		}
	}

	if cfg.Database.Enabled {
		conn, err := postgres.NewConnection(ctx, cfg.Database, log)
		if err != nil {
			if err := optional("postgres", err); err != nil {
				return nil, app.closeWith(err)
			}
		} else {
			app.addCloser(func() error { conn.Close(); return nil })
			app.checkers = append(app.checkers, handlers.CheckFunc("postgres", conn.HealthCheck))
			deps.History = repositories.NewGenerationRepository(conn.Pool(), log)
		}
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka, log)
		if err != nil {
			// Only a bad configuration gets here; no connection is made yet.
			return nil, app.closeWith(err)
		}
		app.addCloser(producer.Close)
		deps.Events = producer
	}

	svc, err := molgen.NewService(deps)
	if err != nil {
		return nil, app.closeWith(err)
	}
	app.Service = svc
	return app, nil
}

// Action returns the form action bound to the app's presenter.
func (a *App) Action() *molgen.Action {
	return molgen.NewAction(a.Service, a.Presenter, a.Logger)
}

// HealthCheckers lists readiness checks for the connected components.
func (a *App) HealthCheckers() []handlers.HealthChecker {
	return a.checkers
}

func (a *App) addCloser(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *App) closeWith(err error) error {
	a.Close()
	return err
}

// Close releases the components in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("Failed to close component", logging.Err(err))
		}
	}
	a.closers = nil
}

//Personal.AI order the ending
