// Package storage opens the local SQLite database of the storefront client
// and applies the embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/migrations"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/cart"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the repositories backed by one database handle.
type Repositories struct {
	DB       *sql.DB
	Metadata metadata.Repository
	Cart     cart.Repository
}

// RunMigrations brings the schema up to date. It is safe to call repeatedly.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite database at dsn and
// migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Open initializes the database at dsn and wires the repositories over it.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Cart:     cart.NewSQLiteRepository(db),
	}, nil
}

// Close releases the database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
