package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"todolists/internal/adapter/database"
	"todolists/internal/adapter/database/memory"
	"todolists/internal/adapter/database/repository"
	"todolists/internal/adapter/session"
	"todolists/internal/adapter/telemetry"
	"todolists/internal/core/port"
	"todolists/internal/core/service"
	"todolists/pkg/config"
)

// Container holds all dependencies of one process. The persistence backend is
// chosen once here and never switched afterwards.
type Container struct {
	Config    *config.AppConfig
	Logger    *otelzap.Logger
	Telemetry *telemetry.Container

	DB       *database.DB
	Sessions port.SessionStore

	Storage port.Persistence
	Service *service.TodoListService
}

// Options carries what differs between callers of NewContainer.
type Options struct {
	// SessionID scopes the ephemeral backend. Ignored by the durable backend.
	SessionID string
	// FatalHandler replaces the default log-and-exit on lost connections.
	FatalHandler database.FatalHandler
}

func NewContainer(ctx context.Context, cfg *config.AppConfig, logger *otelzap.Logger, opts Options) (*Container, error) {
	tel, err := telemetry.NewContainer(ctx, cfg.Telemetry, cfg.Environment)

	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	c := &Container{Config: cfg, Logger: logger, Telemetry: tel}

	switch cfg.Backend {
	case config.BackendDurable:
		err = c.initDurable(ctx, opts)
	case config.BackendEphemeral:
		err = c.initEphemeral(ctx, opts)
	default:
		err = fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if err != nil {
		c.Close(ctx)
		return nil, err
	}

	c.Service = service.NewTodoListService(c.Storage, logger)

	return c, nil
}

func (c *Container) initDurable(ctx context.Context, opts Options) error {
	db, err := database.Open(ctx, c.Config.Database)

	if err != nil {
		return err
	}

	c.DB = db

	executorOpts := []database.ExecutorOption{
		database.WithMetrics(database.NewMetrics(c.Telemetry.PrometheusRegistry)),
	}

	if opts.FatalHandler != nil {
		executorOpts = append(executorOpts, database.WithFatalHandler(opts.FatalHandler))
	}

	executor := database.NewExecutor(db, c.Logger, executorOpts...)

	c.Storage, err = repository.NewPersistence(ctx, db, executor, c.Logger)

	return err
}

func (c *Container) initEphemeral(ctx context.Context, opts Options) error {
	if opts.SessionID == "" {
		return errors.New("a session id is required for the ephemeral backend")
	}

	switch c.Config.Session.Store {
	case config.SessionStoreRedis:
		client, err := session.NewRedisClient(ctx, c.Config.Session.RedisURL)

		if err != nil {
			return err
		}

		c.Sessions = session.NewRedisStore(client, c.Config.Session.TTL)
	default:
		c.Sessions = session.NewMemoryStore(c.Config.Session.TTL)
	}

	var err error
	c.Storage, err = memory.NewPersistence(ctx, c.Sessions.Session(opts.SessionID), c.Logger)

	return err
}

func (c *Container) Close(ctx context.Context) error {
	var errs []error

	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}

	if c.Sessions != nil {
		errs = append(errs, c.Sessions.Close())
	}

	if c.Telemetry != nil {
		errs = append(errs, c.Telemetry.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
