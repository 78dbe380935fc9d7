package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/xtding233/hoops-backend/internal/api"
	"github.com/xtding233/hoops-backend/internal/config"
	"github.com/xtding233/hoops-backend/internal/engine"
	"github.com/xtding233/hoops-backend/internal/gacha"
	"github.com/xtding233/hoops-backend/internal/logging"
	"github.com/xtding233/hoops-backend/internal/rpc"
	"github.com/xtding233/hoops-backend/internal/scout"
	"github.com/xtding233/hoops-backend/internal/session"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("hoopsd exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	loader := config.NewLoader(cfg.CatalogDir)
	cat, err := loader.Load(cfg.Profile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	for _, warn := range config.Warnings(cat) {
		logger.Warn("catalog", zap.String("warning", warn))
	}

	var rng gacha.RandomSource
	if cfg.Seed != 0 {
		rng = gacha.NewSeededRNG(cfg.Seed)
	}
	opts := []engine.Option{engine.WithLogger(logger.Named("engine"))}
	if cfg.OpenRouterAPIKey != "" {
		opts = append(opts, engine.WithScouter(scout.NewOpenRouter(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger.Named("scout"),
		)))
	} else {
		logger.Info("OPENROUTER_API_KEY not set, scouting hands out fallback prospects")
	}

	sess := session.New(st, cfg.Slot, engine.New(cat, rng, opts...), state.RealClock{}, logger.Named("session"))

	if cfg.CatalogDir != "" {
		w := config.Watch(loader, cfg.Profile, cfg.WatchInterval, logger.Named("catalog"), func(c config.Catalog) {
			sess.SetEngine(engine.New(c, rng, opts...))
		})
		defer w.Stop()
	}

	httpSrv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewServer(sess, logger.Named("http"), api.Options{
			RevealDelay: cfg.RevealDelay,
			MatchDelay:  cfg.MatchDelay,
		}).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 2)
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr), zap.String("catalog", cat.Version))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
		}
	}()

	var grpcSrv *grpc.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		grpcSrv = rpc.NewGRPCServer(sess, logger.Named("grpc"))
		go func() {
			logger.Info("grpc listening", zap.String("addr", cfg.GRPCAddr))
			if err := grpcSrv.Serve(lis); err != nil {
				errc <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errc:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		st, err := store.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return st, nil
	default:
		st, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, nil
	}
}
