package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"zoo_management/pkg/config"
	"zoo_management/pkg/logger"
	"zoo_management/pkg/models"
)

// Open connects to postgres when cfg.Database.URL is set and to the sqlite
// file at cfg.Database.Path otherwise. Failed attempts are retried
// cfg.Database.ConnectRetries times.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dbCfg := cfg.Database

	var dialector gorm.Dialector
	if cfg.UsesPostgres() {
		log.Info("Connecting to postgres", zap.String("host", redactedHost(dbCfg.URL)))
		dialector = postgres.Open(cfg.PostgresDSN())
	} else {
		log.Info("Opening sqlite database", zap.String("path", dbCfg.Path))
		dialector = sqlite.Open(SQLiteDSN(dbCfg.Path, dbCfg.EnforceForeignKeys))
	}

	gormCfg := GormConfig(log, cfg.Log.Level, dbCfg)

	var db *gorm.DB
	var err error
	for i := 0; i < dbCfg.ConnectRetries; i++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			err = Ping(ctx, db)
		}
		if err == nil {
			break
		}
		log.Warn("Database connection attempt failed",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", dbCfg.ConnectRetries),
			zap.Error(err),
		)
		if i < dbCfg.ConnectRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(dbCfg.ConnectRetryDelay):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	log.Info("Database connection established")
	return db, nil
}

// GormConfig is shared by the server and the admin commands.
func GormConfig(log *zap.Logger, level string, dbCfg config.DatabaseConfig) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLogger(log, logger.GormLevel(level), dbCfg.SlowQueryThreshold),
		TranslateError: true,
		// Rows may point at parents that do not exist unless enforcement is asked for.
		DisableForeignKeyConstraintWhenMigrating: !dbCfg.EnforceForeignKeys,
	}
}

// SQLiteDSN builds a mattn/go-sqlite3 DSN for a database file.
func SQLiteDSN(path string, enforceForeignKeys bool) string {
	params := url.Values{}
	params.Set("_busy_timeout", "5000")
	if path != ":memory:" {
		params.Set("_journal_mode", "WAL")
	}
	if enforceForeignKeys {
		params.Set("_foreign_keys", "on")
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}

// Migrate creates missing tables and columns. Running it twice is harmless.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func redactedHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unparseable"
	}
	return u.Host
}
