package server

import (
	"context"
	"fmt"

	"MusicHub/config"
	"MusicHub/core/relay"
	"MusicHub/db"
	"MusicHub/logger"
	"MusicHub/repository"
)

// Backends bundles the storage chosen by configuration.
type Backends struct {
	Users   repository.UserRepository
	Streams repository.StreamRepository
	Relay   relay.Store

	closers []func() error
}

// Close releases every connection opened by OpenBackends.
func (b *Backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("[Server] 关闭连接失败", logger.ErrorField(err))
		}
	}
}

// OpenBackends connects the storage for cfg.StorageDriver and cfg.RelayDriver.
// When migrate is true, indexes and tables are created first.
func OpenBackends(ctx context.Context, cfg *config.Config, migrate bool) (*Backends, error) {
	b := &Backends{}

	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := db.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() error { return db.DisconnectMongo(client) })

		database := client.Database(cfg.MongoDB)
		if migrate {
			if err := repository.EnsureMongoIndexes(ctx, database); err != nil {
				b.Close()
				return nil, err
			}
		}
		b.Users = repository.NewMongoUserRepository(database)
		b.Streams = repository.NewMongoStreamRepository(database)
		logger.Info("[Server] MongoDB connected", logger.String("database", cfg.MongoDB))

	case config.StorageMySQL:
		gdb, err := db.ConnectGormDB(cfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() error { return db.CloseGormDB(gdb) })

		if migrate {
			if err := db.AutoMigrate(gdb); err != nil {
				b.Close()
				return nil, err
			}
		}
		b.Users = repository.NewGormUserRepository(gdb)
		b.Streams = repository.NewGormStreamRepository(gdb)
		logger.Info("[Server] MySQL connected", logger.String("database", cfg.DBName))

	case config.StorageMemory:
		b.Users = repository.NewMemoryUserRepository()
		b.Streams = repository.NewMemoryStreamRepository()
		logger.Warn("[Server] using in-memory storage, data is lost on restart")

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	switch cfg.RelayDriver {
	case config.RelayRedis:
		client, err := db.ConnectRedis(cfg)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		b.Relay = relay.NewRedisStore(client)
		logger.Info("[Server] Redis connected", logger.String("addr", cfg.RedisAddr()))
	case config.RelayMemory:
		b.Relay = relay.NewMemoryStore()
	default:
		b.Close()
		return nil, fmt.Errorf("unknown relay driver %q", cfg.RelayDriver)
	}

	return b, nil
}
