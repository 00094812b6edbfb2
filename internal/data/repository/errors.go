package repository

import (
	"errors"
	"fmt"

	"field-booking/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver errors onto the apperror taxonomy. Constraint
// violations become ErrConflict, everything else ErrStore.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", apperror.ErrConflict, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %w", apperror.ErrStore, err)
}

func isConflict(err error) bool {
	return errors.Is(err, apperror.ErrConflict)
}
