package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/api"
	"github.com/vyom/tryon-store/internal/api/handler"
	"github.com/vyom/tryon-store/internal/core/ports"
	"github.com/vyom/tryon-store/internal/core/service"
	"github.com/vyom/tryon-store/internal/infrastructure/auth"
	"github.com/vyom/tryon-store/internal/infrastructure/config"
	"github.com/vyom/tryon-store/internal/infrastructure/db/memory"
	mongostore "github.com/vyom/tryon-store/internal/infrastructure/db/mongo"
	"github.com/vyom/tryon-store/internal/infrastructure/db/record"
	redisstore "github.com/vyom/tryon-store/internal/infrastructure/db/redis"
	"github.com/vyom/tryon-store/internal/infrastructure/tryon"
	"github.com/vyom/tryon-store/pkg/logger"
)

const serviceName = "tryon-store"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// backend is the selected key-value store plus the try-on duplicate guard
// that lives next to it.
type backend struct {
	kv    ports.KeyValueStore
	guard service.ActionGuard
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return &backend{kv: redisstore.NewStore(client), guard: redisstore.NewActionGuard(client)}, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, err
		}
		return &backend{kv: mongostore.NewStore(client, db), guard: memory.NewActionGuard()}, nil

	default:
		return &backend{kv: memory.NewStore(), guard: memory.NewActionGuard()}, nil
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.Store.Backend).
		Str("model", cfg.TryOn.Model).
		Msg("starting")

	if !cfg.Store.Durable() {
		log.Warn().Msg("STORE_BACKEND=memory: users, orders and the session are lost on restart")
	}

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Store.Backend, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := be.kv.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("error closing store")
		}
	}()

	credentials, err := auth.NewCredentials(cfg.PasswordHashing)
	if err != nil {
		return err
	}

	store := record.NewStore(be.kv, cfg.Store.KeyPrefix, logger.Component("record"))
	if err := record.NewSeeder(store, credentials, cfg.Store.ResetCorrupt, logger.Component("seed")).Seed(ctx); err != nil {
		return err
	}

	catalog := record.NewCatalogRepository(store)
	orders := record.NewOrderRepository(store)

	session, err := service.NewSessionService(ctx,
		record.NewIdentityRepository(store),
		record.NewSessionStore(store),
		credentials,
		logger.Component("session"),
	)
	if err != nil {
		return err
	}

	cart := service.NewCart()
	checkout := service.NewCheckoutService(session, cart, orders, logger.Component("checkout"))

	if cfg.TryOn.APIKey == "" {
		log.Warn().Msg("TRYON_API_KEY is not set; try-on requests will be rejected upstream")
	}
	requester := tryon.New(tryon.Config{
		Endpoint: cfg.TryOn.Endpoint,
		Model:    cfg.TryOn.Model,
		APIKey:   cfg.TryOn.APIKey,
		Timeout:  cfg.TryOn.Timeout,
	}, logger.Component("tryon"))
	tryOn := service.NewTryOnService(catalog, record.NewPhotoStore(store), requester, be.guard, logger.Component("tryon"))

	e := api.NewRouter(api.Dependencies{
		Catalog:   catalog,
		Orders:    orders,
		Session:   session,
		Cart:      cart,
		Checkout:  checkout,
		TryOn:     tryOn,
		Readiness: map[string]handler.Pinger{cfg.Store.Backend: be.kv},
	}, logger.Component("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		// Generation can take up to the try-on timeout.
		WriteTimeout: cfg.TryOn.Timeout + 15*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.TryOn.Timeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped cleanly")
	return nil
}
