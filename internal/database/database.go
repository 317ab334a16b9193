package database

import (
	"context"
	"fmt"
	"log"

	"catalog/internal/config"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// Stores bundles the repositories backed by one database connection.
type Stores struct {
	Products repositories.ProductRepository
	Users    repositories.UserRepository
	Backend  string

	closeFn func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Stores) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// Open connects to the backend selected by cfg.DBDriver. It makes exactly one
// connection attempt.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverPostgres, config.DriverSQLite:
		return openGORM(ctx, cfg.DBDriver, cfg.DatabaseDSN)
	case config.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// NewMemory returns process-local stores with nothing to close.
func NewMemory() *Stores {
	log.Println("Using in-memory storage")
	return &Stores{
		Products: repositories.NewMemoryProductRepository(),
		Users:    repositories.NewMemoryUserRepository(),
		Backend:  config.DriverMemory,
	}
}

// Seed inserts products into an empty catalog.
func Seed(ctx context.Context, repo repositories.ProductRepository, products []models.Product) error {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].Name, err)
		}
		log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
	}
	return nil
}
