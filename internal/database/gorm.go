package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"catalog/internal/config"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported SQL driver %q", driver)
}

// OpenGORM opens a SQL database through GORM and migrates the catalog tables.
func OpenGORM(driver, dsn string) (*gorm.DB, error) {
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func openGORM(ctx context.Context, driver, dsn string) (*Stores, error) {
	db, err := OpenGORM(driver, dsn)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db() error: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	log.Printf("%s connected", driver)

	return &Stores{
		Products: repositories.NewGORMProductRepository(db),
		Users:    repositories.NewGORMUserRepository(db),
		Backend:  driver,
		closeFn: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}
