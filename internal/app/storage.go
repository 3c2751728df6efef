package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/slot_swapper/internal/config"
	"github.com/Freeeeeet/slot_swapper/internal/repository"
	"github.com/Freeeeeet/slot_swapper/internal/repository/base"
	"github.com/Freeeeeet/slot_swapper/internal/repository/memory"
	"github.com/Freeeeeet/slot_swapper/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Services собранный слой бизнес-логики
type Services struct {
	Users    *service.UserService
	Slots    *service.SlotService
	Exchange *service.ExchangeService
}

// Storage хранилище и сервисы поверх него
type Storage struct {
	Services

	// DB nil для драйвера memory
	DB *pgxpool.Pool
}

// OpenStorage подключает хранилище по конфигу и собирает сервисы.
// Для postgres применяет миграции.
func OpenStorage(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")

		store := memory.NewStore()
		slots, swaps := store.Slots(), store.Swaps()
		return &Storage{
			Services: Services{
				Users:    service.NewUserService(store.Users(), logger),
				Slots:    service.NewSlotService(store, slots, swaps, logger),
				Exchange: service.NewExchangeService(store, slots, swaps, logger),
			},
		}, nil

	case config.DriverPostgres:
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return nil, err
		}

		if err := migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}

		tx := base.NewTxManager(pool)
		slots := repository.NewSlotRepository(pool)
		swaps := repository.NewSwapRepository(pool)
		return &Storage{
			Services: Services{
				Users:    service.NewUserService(repository.NewUserRepository(pool), logger),
				Slots:    service.NewSlotService(tx, slots, swaps, logger),
				Exchange: service.NewExchangeService(tx, slots, swaps, logger),
			},
			DB: pool,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close освобождает соединения с БД
func (s *Storage) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DB_DSN: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
