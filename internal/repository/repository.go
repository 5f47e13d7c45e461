package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fieldscout/meridian/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads provider and review data from postgres. The engine
// treats everything here as read-only; writes belong to the admin side
// of the system.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Database is the subset of pgxpool.Pool the repository needs. Keeping it
// narrow lets tests substitute pgxmock.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProviderCatalog exposes candidate providers and provider counts.
type ProviderCatalog interface {
	ListActiveProviders(ctx context.Context, serviceType models.ServiceType, specialtyIDs []string) ([]models.Provider, error)
	CountByType(ctx context.Context, serviceType models.ServiceType) (int, error)
	ListSpecialties(ctx context.Context, serviceType models.ServiceType) ([]models.Specialty, error)
}

// ReviewCatalog exposes review ratings and the moderation backlog.
type ReviewCatalog interface {
	ListAllRatings(ctx context.Context) ([]float64, error)
	CountPendingModeration(ctx context.Context) (int, error)
}

// NewRepository creates a new instance of Repository with the provided
// Database. It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// NewDatabase establishes a pgx connection pool and verifies it with a
// ping.
func NewDatabase(host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
