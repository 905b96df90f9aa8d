package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/sweet_shop/internal/config"
	"github.com/Skotchmaster/sweet_shop/internal/models"
)

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func Open(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if driver == config.DriverSQLite {
		// sqlite allows a single writer; an in-memory database also lives
		// only as long as its one connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		configurePool(sqlDB)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}

// OpenMemory returns a migrated in-memory sqlite database.
func OpenMemory(ctx context.Context) (*gorm.DB, error) {
	db, err := Open(ctx, config.DriverSQLite, ":memory:")
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return backfillFolded(ctx, db)
}

// backfillFolded fills the search columns of rows written before they existed.
func backfillFolded(ctx context.Context, db *gorm.DB) error {
	var stale []models.Sweet
	err := db.WithContext(ctx).
		Where("(name_folded = '' AND name <> '') OR (category_folded = '' AND category <> '')").
		Find(&stale).Error
	if err != nil {
		return fmt.Errorf("backfill search columns: %w", err)
	}
	for i := range stale {
		s := &stale[i]
		err := db.WithContext(ctx).Model(s).UpdateColumns(map[string]any{
			"name_folded":     models.Fold(s.Name),
			"category_folded": models.Fold(s.Category),
		}).Error
		if err != nil {
			return fmt.Errorf("backfill sweet %d: %w", s.ID, err)
		}
	}
	return nil
}

// Reset drops and recreates every table.
func Reset(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Migrator().DropTable(models.All()...); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return Migrate(ctx, db)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
