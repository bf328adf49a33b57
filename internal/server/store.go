package server

import (
	"context"

	"booksapi/internal/book"
	"booksapi/internal/config"
	"booksapi/internal/platform/database"

	"go.uber.org/zap"
)

// Store is the opened book repository with its lifecycle hooks.
type Store struct {
	Repo  book.Repository
	Ping  PingFunc
	Close func()
}

// OpenStore connects to the configured driver, migrating first when
// cfg.AutoMigrate is set.
func OpenStore(ctx context.Context, cfg config.DB, logger *zap.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		sqlDB, err := database.OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			applied, err := database.MigrateSQLite(ctx, sqlDB)
			if err != nil {
				sqlDB.Close()
				return nil, err
			}
			logger.Info("migrations applied", zap.Int("count", applied))
		}
		logger.Info("database connection OK", zap.String("driver", cfg.Driver), zap.String("dsn", cfg.DSN))
		return &Store{
			Repo:  book.NewSQLiteRepo(sqlDB, cfg.QueryTimeout),
			Ping:  sqlDB.PingContext,
			Close: func() { sqlDB.Close() },
		}, nil
	default:
		pool, err := database.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			applied, err := database.MigratePostgres(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info("migrations applied", zap.Int("count", applied))
		}
		logger.Info("database connection OK", zap.String("driver", cfg.Driver), zap.String("dsn", database.RedactDSN(cfg.DSN)))
		return &Store{
			Repo:  book.NewPostgresRepo(pool, cfg.QueryTimeout),
			Ping:  pool.Ping,
			Close: pool.Close,
		}, nil
	}
}
