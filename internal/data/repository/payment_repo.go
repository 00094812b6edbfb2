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

type PaymentRepository interface {
	CreateOnce(ctx context.Context, payment *entity.Payment) (bool, error)
	FindByID(ctx context.Context, id int64) (*entity.Payment, error)
	FindByReservationID(ctx context.Context, reservationID int64) (*entity.Payment, error)
	MarkPaid(ctx context.Context, id int64) (bool, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, reservation_id, amount, status, created_at, paid_at`

// CreateOnce inserts a pending payment unless the reservation already has
// one. It reports whether a row was inserted; when not, payment is left as is.
func (r *paymentRepository) CreateOnce(ctx context.Context, payment *entity.Payment) (bool, error) {
	query := `
		INSERT INTO payments (reservation_id, amount, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (reservation_id) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		payment.ReservationID,
		payment.Amount,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.Int64("reservation_id", payment.ReservationID),
		)
		return false, fmt.Errorf("create payment for reservation %d: %w", payment.ReservationID, translateError(err))
	}

	return true, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id int64) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := r.findOne(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to find payment by ID", zap.Error(err), zap.Int64("payment_id", id))
		return nil, fmt.Errorf("find payment by ID %d: %w", id, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByReservationID(ctx context.Context, reservationID int64) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reservation_id = $1`

	payment, err := r.findOne(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find payment by reservation ID",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("find payment by reservation ID %d: %w", reservationID, err)
	}

	return payment, nil
}

func (r *paymentRepository) findOne(ctx context.Context, query string, arg int64) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&payment.ID,
		&payment.ReservationID,
		&payment.Amount,
		&payment.Status,
		&payment.CreatedAt,
		&payment.PaidAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}

	return &payment, nil
}

// MarkPaid moves the payment to pagado and reports whether this call did it.
// A payment that is already pagado is left untouched and reports false.
func (r *paymentRepository) MarkPaid(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE payments
		SET status = $2, paid_at = COALESCE(paid_at, NOW())
		WHERE id = $1 AND status <> $2
	`

	result, err := r.db.Exec(ctx, query, id, entity.PaymentStatusPaid)
	if err != nil {
		r.log.Error("Failed to confirm payment", zap.Error(err), zap.Int64("payment_id", id))
		return false, fmt.Errorf("confirm payment %d: %w", id, translateError(err))
	}

	if result.RowsAffected() == 1 {
		return true, nil
	}

	payment, err := r.findOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to find payment by ID", zap.Error(err), zap.Int64("payment_id", id))
		return false, fmt.Errorf("find payment by ID %d: %w", id, err)
	}
	if payment == nil {
		return false, fmt.Errorf("payment %d: %w", id, apperror.ErrNotFound)
	}

	return false, nil
}
