package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	appsession "github.com/astro-web3/volunteer-management/internal/app/session"
	appvolunteer "github.com/astro-web3/volunteer-management/internal/app/volunteer"
	"github.com/astro-web3/volunteer-management/internal/config"
	"github.com/astro-web3/volunteer-management/internal/domain/session"
	"github.com/astro-web3/volunteer-management/internal/domain/volunteer"
	"github.com/astro-web3/volunteer-management/internal/infra/cache"
	"github.com/astro-web3/volunteer-management/internal/infra/mongodb"
	"github.com/astro-web3/volunteer-management/internal/transport/http/handler"
	"github.com/astro-web3/volunteer-management/pkg/logger"
	"github.com/astro-web3/volunteer-management/pkg/telemetry"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	httpServer *http.Server
	store      *mongodb.Store
	redis      *redis.Client
}

const (
	idleTimeoutMultiplier = 2
	serviceName           = "volunteer-management"
)

func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger.InitLogger(cfg.Observability.LogLevel, cfg.Observability.Format, cfg.Observability.LogSource)

	if err := telemetry.Init(telemetry.Config{
		ServiceName: serviceName,
		Environment: cfg.App.Env,
		EndpointURL: cfg.Observability.TracingEndpointURL,
		Enabled:     cfg.Observability.TraceEnabled,
		SampleRatio: 1.0,
		Insecure:    true,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	var (
		store       *mongodb.Store
		redisClient *redis.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		store, err = mongodb.Connect(gctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
		if err != nil {
			return fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		return nil
	})
	if cfg.Redis.URL != "" {
		g.Go(func() error {
			var err error
			redisClient, err = cache.NewRedisClient(gctx, cfg.Redis.URL, cfg.Redis.PoolSize)
			if err != nil {
				return fmt.Errorf("failed to create redis client: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = closeBackends(ctx, store, redisClient)
		return nil, err
	}

	sessionOpts := []session.Option{}
	if redisClient != nil {
		sessionOpts = append(sessionOpts, session.WithRevocationStore(cache.NewRevocationStore(redisClient)))
	} else {
		logger.WarnContext(ctx, "redis not configured, logout will not revoke issued tokens")
	}

	sessionDomainService, err := session.NewService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, sessionOpts...)
	if err != nil {
		_ = closeBackends(ctx, store, redisClient)
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}
	sessionService := appsession.NewService(sessionDomainService)

	volunteerDomainService := volunteer.NewService(store.Posts(), store.Registrations())
	volunteerCommandService := appvolunteer.NewCommandService(volunteerDomainService)
	volunteerQueryService := appvolunteer.NewQueryService(volunteerDomainService)

	var metrics *Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = NewMetrics()
	}

	cookies := NewCookiePolicy(cfg)
	router := NewRouter(cfg, Routes{
		Guard:     NewGuard(sessionService, cookies, metrics),
		Session:   NewSessionHandler(sessionService, cookies),
		Volunteer: handler.NewVolunteerHandler(volunteerCommandService, volunteerQueryService),
		Metrics:   metrics,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout * idleTimeoutMultiplier,
	}

	return &Server{
		httpServer: httpServer,
		store:      store,
		redis:      redisClient,
	}, nil
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests before releasing the database and cache connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if closeErr := closeBackends(ctx, s.store, s.redis); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}

func closeBackends(ctx context.Context, store *mongodb.Store, redisClient *redis.Client) error {
	var errs []error
	if store != nil {
		if err := store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect mongodb: %w", err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.WarnContext(ctx, "backend close failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
