package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/spell-draft-backend/internal/config"
	"github.com/DoyleJ11/spell-draft-backend/internal/httpapi"
	"github.com/DoyleJ11/spell-draft-backend/internal/hub"
	"github.com/DoyleJ11/spell-draft-backend/internal/logging"
	"github.com/DoyleJ11/spell-draft-backend/internal/spell"
	"github.com/DoyleJ11/spell-draft-backend/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	h := hub.NewHub(ctx, logger.Named("hub"))

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, httpapi.Deps{
		Store:        repo,
		SpellsAmount: cfg.SpellsAmount,
		NewGenerator: func() spell.Generator { return spell.NewRandom() },
		Logger:       logger.Named("http"),
		Linger:       cfg.LobbyLinger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Kind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// Lobbies hang off ctx and stop with it.
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(cfg config.StoreConfig) (store.Repository, func(), error) {
	switch cfg.Kind {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		repo, err := store.NewRedis(&store.RedisConfig{Client: client, TTL: cfg.SessionTTL})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, func() { _ = client.Close() }, nil
	case config.StorePostgres:
		repo, err := store.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	default:
		return store.NewMemory(), func() {}, nil
	}
}
