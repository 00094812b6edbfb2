package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

//go:embed seed.sql
var seedSQL string

// Migrate creates the tables and indexes if they are missing and seeds the
// default fields on an empty catalog. Safe to run on every start.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	if _, err := db.Exec(ctx, seedSQL); err != nil {
		return fmt.Errorf("seed fields: %w", err)
	}

	return nil
}
