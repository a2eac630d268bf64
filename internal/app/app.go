// Package app wires config, stores, services and transports together. Both
// binaries build on it.
package app

import (
	"context"
	"errors"
	"fmt"

	"tasktracker/internal/achievement"
	"tasktracker/internal/config"
	"tasktracker/internal/db"
	"tasktracker/internal/events"
	httpserver "tasktracker/internal/http"
	"tasktracker/internal/http/handlers"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/logger"
	"tasktracker/internal/repository"
	"tasktracker/internal/repository/local"
	"tasktracker/internal/service"
	"tasktracker/internal/templates"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Stores is one record store backend
type Stores struct {
	Tasks        service.TaskStore
	Projects     service.ProjectStore
	Achievements service.AchievementStore
	// Ping checks the backend connection
	Ping  handlers.Check
	Close func() error
}

// OpenStores connects the backend selected by cfg.StoreDriver
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		gdb, err := local.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqliteStores(gdb), nil
	default:
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return postgresStores(pool), nil
	}
}

func postgresStores(pool *pgxpool.Pool) *Stores {
	return &Stores{
		Tasks:        repository.NewTaskRepository(pool),
		Projects:     repository.NewProjectRepository(pool),
		Achievements: repository.NewAchievementRepository(pool),
		Ping:         pool.Ping,
		Close: func() error {
			pool.Close()
			return nil
		},
	}
}

func sqliteStores(gdb *gorm.DB) *Stores {
	return &Stores{
		Tasks:        local.NewTaskRepository(gdb),
		Projects:     local.NewProjectRepository(gdb),
		Achievements: local.NewAchievementRepository(gdb),
		Ping: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Close: func() error { return local.Close(gdb) },
	}
}

// Services is the domain layer
type Services struct {
	Tasks        *service.TaskService
	Projects     *service.ProjectService
	Achievements *service.AchievementService
	Templates    *service.TemplateService
	Views        *service.ViewService
}

// NewServices builds the services over stores
func NewServices(cfg *config.Config, stores *Stores, pub service.Publisher, catalog *templates.Catalog) *Services {
	clock := service.Clock{Location: cfg.Location}
	evaluator := achievement.NewEvaluator(cfg.AchievementTrigger)

	s := &Services{
		Tasks:        service.NewTaskService(stores.Tasks, stores.Projects, pub, clock),
		Projects:     service.NewProjectService(stores.Projects, stores.Tasks, pub, clock),
		Achievements: service.NewAchievementService(stores.Achievements, stores.Tasks, evaluator, pub, clock),
		Templates:    service.NewTemplateService(catalog),
	}
	s.Tasks.SetAwarder(s.Achievements)
	s.Views = service.NewViewService(s.Tasks, s.Projects, s.Achievements, clock)
	return s
}

// App holds a fully wired tracker
type App struct {
	Config   *config.Config
	Stores   *Stores
	Services *Services

	redis *redis.Client
	nats  *events.Publisher
}

// New connects every dependency named in cfg. Redis and NATS are optional:
// without them rate limiting is in process and events are dropped.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Stores: stores}

	catalog, err := templates.Load(cfg.TemplatesFile)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var pub service.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		p, err := events.Connect(cfg.NATSURL, "tasktracker")
		if err != nil {
			logger.Warn("events disabled", "error", err)
		} else {
			a.nats = p
			pub = p
		}
	}

	a.redis, err = middleware.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		// fall back to the in-process limiter
		logger.Warn("redis unavailable, rate limiting in process", "error", err)
	}

	a.Services = NewServices(cfg, stores, pub, templates.NewCatalog(catalog))
	return a, nil
}

// Router builds the HTTP handler
func (a *App) Router() *gin.Engine {
	s := a.Services
	extra := map[string]handlers.Check{}
	if a.redis != nil {
		extra["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}
	if a.nats != nil {
		extra["nats"] = func(ctx context.Context) error { return a.nats.Ping() }
	}

	return httpserver.NewRouter(httpserver.Deps{
		Handler:    handlers.NewHandler(s.Tasks, s.Projects, s.Achievements, s.Templates, s.Views),
		Health:     handlers.NewHealthHandler(a.Stores.Ping, a.Config.AppVersion, extra),
		Limiter:    middleware.NewRateLimiter(a.redis, "api", a.Config.APIRateLimit, a.Config.APIRateWindow),
		Superseder: middleware.NewSuperseder(),
	})
}

// Close releases every connection
func (a *App) Close() error {
	var errs []error
	if a.nats != nil {
		errs = append(errs, a.nats.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.Stores != nil {
		errs = append(errs, a.Stores.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close app: %w", err)
	}
	return nil
}
