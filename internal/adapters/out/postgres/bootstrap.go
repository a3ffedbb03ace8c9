package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"epharmacy/internal/adapters/out/postgres/membershiprepo"
	"epharmacy/internal/adapters/out/postgres/orderrepo"
	"epharmacy/internal/adapters/out/postgres/pharmacyrepo"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EnsureDatabase connects to the server through adminDSN (a DSN pointing at an
// existing database such as "postgres") and creates dbName when it is missing.
func EnsureDatabase(ctx context.Context, adminDSN, dbName string) error {
	conn, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return fmt.Errorf("open admin connection: %w", err)
	}
	defer conn.Close()

	var exists bool
	err = conn.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %q: %w", dbName, err)
	}
	if exists {
		return nil
	}

	if _, err = conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("create database %q: %w", dbName, err)
	}
	return nil
}

// Migrate creates or updates every table used by the repositories and queries.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&pharmacyrepo.PharmacyDTO{},
		&pharmacyrepo.InventoryItemDTO{},
		&membershiprepo.MembershipDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PrescriptionDTO{},
	)
}
