package repository

import (
	"context"
	"errors"
	"fmt"

	"field-booking/internal/data/entity"
	"field-booking/pkg/apperror"
	"field-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FieldRepository interface {
	Create(ctx context.Context, field *entity.Field) error
	FindByID(ctx context.Context, id int64) (*entity.Field, error)
	FindAll(ctx context.Context) ([]*entity.Field, error)
	Update(ctx context.Context, field *entity.Field) error
	Delete(ctx context.Context, id int64) error
}

type fieldRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFieldRepository(db database.PgxIface, log *zap.Logger) FieldRepository {
	return &fieldRepository{
		db:  db,
		log: log.With(zap.String("repository", "field")),
	}
}

func (r *fieldRepository) Create(ctx context.Context, field *entity.Field) error {
	query := `
		INSERT INTO fields (name, location, price_per_hour)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, field.Name, field.Location, field.PricePerHour).Scan(&field.ID)
	if err != nil {
		r.log.Error("Failed to create field",
			zap.Error(err),
			zap.String("name", field.Name),
		)
		return fmt.Errorf("create field %s: %w", field.Name, translateError(err))
	}

	return nil
}

func (r *fieldRepository) FindByID(ctx context.Context, id int64) (*entity.Field, error) {
	query := `
		SELECT id, name, location, price_per_hour
		FROM fields
		WHERE id = $1
	`

	var field entity.Field
	err := r.db.QueryRow(ctx, query, id).Scan(
		&field.ID,
		&field.Name,
		&field.Location,
		&field.PricePerHour,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find field by ID", zap.Error(err), zap.Int64("field_id", id))
		return nil, fmt.Errorf("find field by ID %d: %w", id, translateError(err))
	}

	return &field, nil
}

func (r *fieldRepository) FindAll(ctx context.Context) ([]*entity.Field, error) {
	query := `
		SELECT id, name, location, price_per_hour
		FROM fields
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list fields", zap.Error(err))
		return nil, fmt.Errorf("list fields: %w", translateError(err))
	}
	defer rows.Close()

	fields := []*entity.Field{}
	for rows.Next() {
		var field entity.Field
		if err := rows.Scan(&field.ID, &field.Name, &field.Location, &field.PricePerHour); err != nil {
			r.log.Error("Failed to scan field row", zap.Error(err))
			return nil, fmt.Errorf("scan field row: %w", translateError(err))
		}
		fields = append(fields, &field)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate field rows: %w", translateError(err))
	}

	return fields, nil
}

func (r *fieldRepository) Update(ctx context.Context, field *entity.Field) error {
	query := `
		UPDATE fields
		SET name = $2, location = $3, price_per_hour = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, field.ID, field.Name, field.Location, field.PricePerHour)
	if err != nil {
		r.log.Error("Failed to update field", zap.Error(err), zap.Int64("field_id", field.ID))
		return fmt.Errorf("update field %d: %w", field.ID, translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("field %d: %w", field.ID, apperror.ErrNotFound)
	}

	return nil
}

// Delete removes the field. A field still referenced by reservations is
// reported as apperror.ErrConflict.
func (r *fieldRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM fields WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err = translateError(err)
		if !isConflict(err) {
			r.log.Error("Failed to delete field", zap.Error(err), zap.Int64("field_id", id))
		}
		return fmt.Errorf("delete field %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("field %d: %w", id, apperror.ErrNotFound)
	}

	r.log.Info("Field deleted", zap.Int64("field_id", id))
	return nil
}
