// Command server runs the taskboard HTTP API and page loaders.
//
//	@title			Taskboard API
//	@version		1.0
//	@description	Role-based project and task board with cookie sessions.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/api"
	"github.com/taskflow/taskboard/internal/api/handler"
	"github.com/taskflow/taskboard/internal/api/page"
	"github.com/taskflow/taskboard/internal/auth"
	"github.com/taskflow/taskboard/internal/core/ports"
	"github.com/taskflow/taskboard/internal/core/service"
	mongostore "github.com/taskflow/taskboard/internal/infrastructure/db/mongo"
	pgstore "github.com/taskflow/taskboard/internal/infrastructure/db/postgres"
	redisstore "github.com/taskflow/taskboard/internal/infrastructure/db/redis"
	"github.com/taskflow/taskboard/internal/infrastructure/http/handlers"
	"github.com/taskflow/taskboard/internal/infrastructure/queue"
	"github.com/taskflow/taskboard/internal/pkg/config"
	"github.com/taskflow/taskboard/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// stores groups the repositories of the configured driver.
type stores struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	audit    ports.AuditRepository
	ping     handlers.Pinger
	close    func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "taskboard",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()
	limiter := redisstore.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	sessions := auth.NewSessionExtractor(codec, log)
	resolver := auth.NewResolver(sessions, st.users)

	authService := service.NewAuthService(st.users, codec, limiter, log)
	userService := service.NewUserService(st.users, log)
	projectService := service.NewProjectService(st.projects, st.users, log)
	taskService := service.NewTaskService(st.tasks, st.projects, st.users, log)
	dashboardService := service.NewDashboardService(st.projects, st.tasks)

	if cfg.SeedDemoUsers {
		if err := userService.SeedDemoUsers(ctx); err != nil {
			return err
		}
		log.Info().Msg("demo users seeded")
	}

	auditCtx, stopAudit := context.WithCancel(ctx)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, st.audit, log)
	dispatcher.Start(auditCtx)

	guard := page.NewGuard(resolver, dispatcher, log)
	pages := page.NewPages(guard, resolver, page.Services{
		Dashboard: dashboardService,
		Projects:  projectService,
		Users:     userService,
		Tasks:     taskService,
	}, log)

	e := api.NewRouter(api.Deps{
		Log:      log,
		Resolver: resolver,
		Pages:    pages,
		Auth: handler.NewAuthHandler(authService, sessions, dispatcher, handler.CookieSettings{
			TTL:    codec.TTL(),
			Secure: cfg.IsProduction(),
		}, log),
		Users:    handler.NewUserHandler(userService),
		Projects: handler.NewProjectHandler(projectService),
		Tasks:    handler.NewTaskHandler(taskService),
		Checks: map[string]handlers.Pinger{
			cfg.StoreDriver: st.ping,
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// Workers drain their queues once cancelled.
	stopAudit()
	dispatcher.Wait()
	if serveErr != nil {
		return serveErr
	}
	log.Info().Msg("server stopped cleanly")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("connected to postgres")
		return &stores{
			users:    pgstore.NewUserRepository(pool),
			projects: pgstore.NewProjectRepository(pool),
			tasks:    pgstore.NewTaskRepository(pool),
			audit:    pgstore.NewAuditRepository(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		users := mongostore.NewUserRepository(db)
		projects := mongostore.NewProjectRepository(db)
		tasks := mongostore.NewTaskRepository(db)
		for _, ensure := range []func(context.Context) error{users.EnsureIndexes, projects.EnsureIndexes, tasks.EnsureIndexes} {
			if err := ensure(ctx); err != nil {
				_ = client.Disconnect(context.Background())
				return nil, err
			}
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &stores{
			users:    users,
			projects: projects,
			tasks:    tasks,
			audit:    mongostore.NewAuditRepository(db),
			ping: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			},
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}, nil
	}
}
