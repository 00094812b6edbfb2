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

type ReservationRepository interface {
	IsSlotFree(ctx context.Context, fieldID int64, date, startTime string) (bool, error)
	CreateIfFree(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id int64) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.ReservationDetail, error)
	FindAllDetailed(ctx context.Context) ([]*entity.ReservationDetail, error)
	FindActiveSlots(ctx context.Context, fieldID int64, date string) ([]entity.Slot, error)
	UpdateStatus(ctx context.Context, id int64, status entity.ReservationStatus) error
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const (
	reservationColumns = `
		r.id, r.user_id, r.field_id,
		to_char(r.date, 'YYYY-MM-DD'),
		to_char(r.start_time, 'HH24:MI'),
		to_char(r.end_time, 'HH24:MI'),
		r.status, r.created_at`

	slotTakenQuery = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE field_id = $1 AND date = $2::date AND start_time = $3::time AND status <> $4
		)`

	lockSlotQuery = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

// SlotKey identifies a (field, date, start_time) slot for advisory locking.
func SlotKey(fieldID int64, date, startTime string) string {
	return fmt.Sprintf("slot:%d:%s:%s", fieldID, date, startTime)
}

func (r *reservationRepository) IsSlotFree(ctx context.Context, fieldID int64, date, startTime string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, slotTakenQuery, fieldID, date, startTime, entity.ReservationStatusCancelled).Scan(&taken)
	if err != nil {
		r.log.Error("Failed to check slot",
			zap.Error(err),
			zap.Int64("field_id", fieldID),
			zap.String("date", date),
			zap.String("start_time", startTime),
		)
		return false, fmt.Errorf("check slot %s: %w", SlotKey(fieldID, date, startTime), translateError(err))
	}

	return !taken, nil
}

// CreateIfFree inserts the reservation as Pendiente unless the slot already
// has an active reservation. Check and insert share one transaction that holds
// an advisory lock on the slot; the partial unique index on active slots
// rejects anything that slips past. Both paths return apperror.ErrConflict.
func (r *reservationRepository) CreateIfFree(ctx context.Context, reservation *entity.Reservation) error {
	key := SlotKey(reservation.FieldID, reservation.Date, reservation.StartTime)
	reservation.Status = entity.ReservationStatusPending

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockSlotQuery, key); err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}

		var taken bool
		err := tx.QueryRow(ctx, slotTakenQuery,
			reservation.FieldID,
			reservation.Date,
			reservation.StartTime,
			entity.ReservationStatusCancelled,
		).Scan(&taken)
		if err != nil {
			return fmt.Errorf("check slot: %w", err)
		}
		if taken {
			return apperror.ErrConflict
		}

		query := `
			INSERT INTO reservations (user_id, field_id, date, start_time, end_time, status)
			VALUES ($1, $2, $3::date, $4::time, $5::time, $6)
			RETURNING id, created_at
		`
		return tx.QueryRow(ctx, query,
			reservation.UserID,
			reservation.FieldID,
			reservation.Date,
			reservation.StartTime,
			reservation.EndTime,
			reservation.Status,
		).Scan(&reservation.ID, &reservation.CreatedAt)
	})

	if err != nil {
		if !isConflict(err) {
			err = translateError(err)
		}
		if isConflict(err) {
			r.log.Warn("Slot already reserved", zap.String("slot", key))
			return fmt.Errorf("reserve %s: %w", key, apperror.ErrConflict)
		}
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("slot", key),
			zap.Int64("user_id", reservation.UserID),
		)
		return fmt.Errorf("reserve %s: %w", key, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id int64) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations r WHERE r.id = $1`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.FieldID,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.Status,
		&reservation.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID", zap.Error(err), zap.Int64("reservation_id", id))
		return nil, fmt.Errorf("find reservation by ID %d: %w", id, translateError(err))
	}

	return &reservation, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.ReservationDetail, error) {
	query := `
		SELECT ` + reservationColumns + `, f.name, u.full_name
		FROM reservations r
		JOIN fields f ON f.id = r.field_id
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.date, r.start_time
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find reservations by user ID %d: %w", userID, translateError(err))
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

func (r *reservationRepository) FindAllDetailed(ctx context.Context) ([]*entity.ReservationDetail, error) {
	query := `
		SELECT ` + reservationColumns + `, f.name, u.full_name
		FROM reservations r
		JOIN fields f ON f.id = r.field_id
		JOIN users u ON u.id = r.user_id
		ORDER BY r.date, r.start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("list reservations: %w", translateError(err))
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

func (r *reservationRepository) scanDetails(rows pgx.Rows) ([]*entity.ReservationDetail, error) {
	details := []*entity.ReservationDetail{}
	for rows.Next() {
		var d entity.ReservationDetail
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.FieldID,
			&d.Date,
			&d.StartTime,
			&d.EndTime,
			&d.Status,
			&d.CreatedAt,
			&d.FieldName,
			&d.UserFullName,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", translateError(err))
		}
		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reservation rows: %w", translateError(err))
	}

	return details, nil
}

func (r *reservationRepository) FindActiveSlots(ctx context.Context, fieldID int64, date string) ([]entity.Slot, error) {
	query := `
		SELECT to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
		FROM reservations
		WHERE field_id = $1 AND date = $2::date AND status <> $3
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, fieldID, date, entity.ReservationStatusCancelled)
	if err != nil {
		r.log.Error("Failed to find active slots",
			zap.Error(err),
			zap.Int64("field_id", fieldID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find active slots for field %d on %s: %w", fieldID, date, translateError(err))
	}
	defer rows.Close()

	slots := []entity.Slot{}
	for rows.Next() {
		var slot entity.Slot
		if err := rows.Scan(&slot.StartTime, &slot.EndTime); err != nil {
			return nil, fmt.Errorf("scan slot row: %w", translateError(err))
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot rows: %w", translateError(err))
	}

	return slots, nil
}

// UpdateStatus sets the status of one reservation. Setting the status it
// already has still counts as a match; only an unknown id is ErrNotFound.
func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		err = translateError(err)
		if !isConflict(err) {
			r.log.Error("Failed to update reservation status",
				zap.Error(err),
				zap.Int64("reservation_id", id),
				zap.String("status", string(status)),
			)
		}
		return fmt.Errorf("update reservation %d status to %s: %w", id, status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %d: %w", id, apperror.ErrNotFound)
	}

	return nil
}

// Update rewrites date, times and status. Moving an active reservation onto a
// taken slot violates the active-slot index and returns ErrConflict. A row
// that is already Cancelada only accepts Cancelada; anything else is
// ErrValidation, decided inside the UPDATE so a concurrent cancel cannot be undone.
func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET date = $2::date, start_time = $3::time, end_time = $4::time, status = $5
		WHERE id = $1 AND (status <> $6 OR $5 = $6)
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Date,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Status,
		entity.ReservationStatusCancelled,
	)
	if err != nil {
		err = translateError(err)
		if !isConflict(err) {
			r.log.Error("Failed to update reservation", zap.Error(err), zap.Int64("reservation_id", reservation.ID))
		}
		return fmt.Errorf("update reservation %d: %w", reservation.ID, err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, reservation.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: cancelled reservation %d cannot be reactivated", apperror.ErrValidation, reservation.ID)
		}
		return fmt.Errorf("reservation %d: %w", reservation.ID, apperror.ErrNotFound)
	}

	return nil
}

func (r *reservationRepository) exists(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		r.log.Error("Failed to check reservation", zap.Error(err), zap.Int64("reservation_id", id))
		return false, fmt.Errorf("check reservation %d: %w", id, translateError(err))
	}
	return found, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete reservation", zap.Error(err), zap.Int64("reservation_id", id))
		return fmt.Errorf("delete reservation %d: %w", id, translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %d: %w", id, apperror.ErrNotFound)
	}

	r.log.Info("Reservation deleted", zap.Int64("reservation_id", id))
	return nil
}

// DeleteByUserID hard-deletes every reservation of the user, whatever its
// status. Payments go with them through ON DELETE CASCADE.
func (r *reservationRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM reservations WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to clear reservation history", zap.Error(err), zap.Int64("user_id", userID))
		return 0, fmt.Errorf("delete reservations of user %d: %w", userID, translateError(err))
	}

	deleted := result.RowsAffected()
	r.log.Info("Reservation history cleared", zap.Int64("user_id", userID), zap.Int64("deleted", deleted))
	return deleted, nil
}
