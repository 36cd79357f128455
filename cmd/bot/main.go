package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/config"
	"github.com/aliskhannn/learn-scripting/internal/delivery/telegram"
	"github.com/aliskhannn/learn-scripting/internal/gateway"
	"github.com/aliskhannn/learn-scripting/internal/infra/file"
	"github.com/aliskhannn/learn-scripting/internal/infra/postgres"
	"github.com/aliskhannn/learn-scripting/internal/infra/redis"
	"github.com/aliskhannn/learn-scripting/internal/infra/sqlite"
	"github.com/aliskhannn/learn-scripting/internal/logger"
	"github.com/aliskhannn/learn-scripting/internal/scheduler"
	"github.com/aliskhannn/learn-scripting/internal/service"
	"github.com/aliskhannn/learn-scripting/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to open store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()
	lg.Info("store opened", zap.String("driver", cfg.Storage.Driver))

	// The bundled catalog is the offline fallback; it must be valid.
	bundle, err := service.LoadBundle()
	if err != nil {
		lg.Fatal("invalid bundled content", zap.Error(err))
	}

	api := gateway.New(cfg.API.BaseURL, lg)

	monitor := scheduler.NewHealthMonitor(api, cfg.API.HealthInterval, lg)
	if err := monitor.Start(); err != nil {
		lg.Fatal("failed to start health monitor", zap.Error(err))
	}
	defer monitor.Stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lessons := service.NewLessonService(api, bundle, lg)

	handler := telegram.NewHandler(bot, lg, telegram.Deps{
		Learners:   service.NewLearnerRegistry(store, lg),
		Lessons:    lessons,
		Quizzes:    service.NewQuizService(api, bundle, lg),
		Reconciler: service.NewReconciler(api, lg),
		Stats:      service.NewStatsService(api, lessons, lg),
		Auth:       service.NewAuthService(api, lg),
		Backup:     service.NewBackupService(),
		Settings:   service.NewSettingsService(),
		Status:     monitor,
	})

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error("handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}

// openStore opens the backend chosen by storage.driver. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return storage.NewMemoryStore(), noop, nil

	case config.DriverFile:
		s, err := file.Open(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		s, err := postgres.NewStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil

	case config.DriverRedis:
		s, err := redis.Open(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
}
