package main

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/communiteq/time-registration/internal/core/ports"
	"github.com/communiteq/time-registration/internal/infrastructure/config"
	mongodb "github.com/communiteq/time-registration/internal/infrastructure/db/mongo"
	redisdb "github.com/communiteq/time-registration/internal/infrastructure/db/redis"
	"github.com/communiteq/time-registration/internal/infrastructure/db/sqlite"
	"github.com/communiteq/time-registration/internal/infrastructure/http/handlers"
	"github.com/communiteq/time-registration/internal/infrastructure/lock"
	"github.com/communiteq/time-registration/internal/infrastructure/queue"
	"github.com/communiteq/time-registration/internal/infrastructure/rabbit"
	"github.com/communiteq/time-registration/pkg/logger"
)

// infrastructure holds the adapters selected by configuration.
type infrastructure struct {
	entries      ports.EntryRepository
	activeTimers ports.ActiveTimerRepository
	directory    ports.PlatformDirectory
	locker       ports.UserLocker
	notifier     ports.Notifier
	readiness    []handlers.Dependency

	closers []func()
}

func (i *infrastructure) close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		i.closers[n]()
	}
}

func connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*infrastructure, error) {
	infra := &infrastructure{}
	ok := false
	defer func() {
		if !ok {
			infra.close()
		}
	}()

	// MongoDB holds the platform directory, so it is always required.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	infra.closers = append(infra.closers, func() { _ = client.Disconnect(context.Background()) })
	infra.directory = mongodb.NewPlatformDirectory(db)
	infra.readiness = append(infra.readiness, handlers.MongoDependency(db))

	switch cfg.StoreDriver {
	case config.StoreSQLite:
		sqlDB, err := openSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		infra.closers = append(infra.closers, func() { _ = sqlDB.Close() })
		infra.entries = sqlite.NewEntryRepository(sqlDB)
		infra.activeTimers = sqlite.NewActiveTimerRepository(sqlDB)
		infra.readiness = append(infra.readiness, handlers.SQLiteDependency(sqlDB))
	default:
		infra.entries = mongodb.NewEntryRepository(db)
		infra.activeTimers = mongodb.NewActiveTimerRepository(db)
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		infra.closers = append(infra.closers, func() { _ = rdb.Close() })
		infra.readiness = append(infra.readiness, handlers.RedisDependency(rdb))
		infra.locker = redisdb.NewUserLocker(rdb, redisdb.LockOptions{Wait: cfg.TimeRegistration.LockWait}, logger.Component("lock"))
	} else {
		log.Warn().Msg("REDIS_ADDR not set, per-user locks are local to this process")
		infra.locker = lock.NewLocalLocker(cfg.TimeRegistration.LockWait)
	}

	switch cfg.Notifications.Backend {
	case config.NotifierRedis:
		infra.notifier = redisdb.NewNotifier(rdb, cfg.Notifications.ChannelPrefix)
	case config.NotifierAMQP:
		n, err := rabbit.NewNotifier(rabbit.Config{URL: cfg.Notifications.AMQPURL, Exchange: cfg.Notifications.AMQPExchange}, logger.Component("amqp"))
		if err != nil {
			return nil, err
		}
		infra.closers = append(infra.closers, n.Close)
		infra.notifier = n
	default:
		infra.notifier = queue.NewLogNotifier(logger.Component("notifier"))
	}

	ok = true
	return infra, nil
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sqlite.OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	if err := sqlite.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return db, nil
}

// connectMongo is used by commands that only need the database handle.
func connectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	return mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
}
