package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"field-booking/internal/data/entity"
	"field-booking/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, apperror.ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503", ConstraintName: "reservations_field_id_fkey"}, apperror.ErrConflict},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, apperror.ErrStore},
		{"driver error", errors.New("conn closed"), apperror.ErrStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err), tt.want)
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	created := time.Now()
	user := &entity.User{FullName: "Ana", Email: "a@x.com", Phone: "300", PasswordHash: "hash"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.FullName, user.Email, user.Phone, user.PasswordHash).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.FullName, user.Email, user.Phone, user.PasswordHash).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(1), user.ID)

	dup := *user
	assert.ErrorIs(t, repo.Create(context.Background(), &dup), apperror.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	cols := []string{"id", "full_name", "email", "phone", "password_hash", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(1), "Ana", "a@x.com", "300", "hash", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("b@x.com").
		WillReturnRows(pgxmock.NewRows(cols))

	user, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ana", user.FullName)

	user, err = repo.FindByEmail(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldRepository_FindAll(t *testing.T) {
	mock := newMock(t)
	repo := NewFieldRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM fields")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "location", "price_per_hour"}).
			AddRow(int64(1), "Cancha 1", "Parque Norte", 45000.0).
			AddRow(int64(2), "Cancha 2", "Parque Sur", 50000.0))

	fields, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Cancha 2", fields[1].Name)
	assert.Equal(t, 50000.0, fields[1].PricePerHour)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewFieldRepository(mock, zap.NewNop())
	query := regexp.QuoteMeta("DELETE FROM fields WHERE id = $1")

	mock.ExpectExec(query).WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "reservations_field_id_fkey"})
	mock.ExpectExec(query).WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(query).WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), apperror.ErrConflict)
	assert.ErrorIs(t, repo.Delete(context.Background(), 9), apperror.ErrNotFound)
	assert.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldRepository_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewFieldRepository(mock, zap.NewNop())
	field := &entity.Field{ID: 9, Name: "X", Location: "Y", PricePerHour: 1}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE fields")).
		WithArgs(field.ID, field.Name, field.Location, field.PricePerHour).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.Update(context.Background(), field), apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_CreateOnce(t *testing.T) {
	mock := newMock(t)
	repo := NewPaymentRepository(mock, zap.NewNop())
	query := regexp.QuoteMeta("ON CONFLICT (reservation_id) DO NOTHING")

	p := &entity.Payment{ReservationID: 1, Amount: 45000, Status: entity.PaymentStatusPending}
	mock.ExpectQuery(query).
		WithArgs(p.ReservationID, p.Amount, p.Status).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), time.Now()))
	mock.ExpectQuery(query).
		WithArgs(p.ReservationID, p.Amount, p.Status).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}))

	created, err := repo.CreateOnce(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(5), p.ID)

	again := &entity.Payment{ReservationID: 1, Amount: 45000, Status: entity.PaymentStatusPending}
	created, err = repo.CreateOnce(context.Background(), again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, again.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_FindAndMarkPaid(t *testing.T) {
	mock := newMock(t)
	repo := NewPaymentRepository(mock, zap.NewNop())
	cols := []string{"id", "reservation_id", "amount", "status", "created_at", "paid_at"}
	paidAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE reservation_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(5), int64(1), 45000.0, entity.PaymentStatusPaid, time.Now(), &paidAt))
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id = $1")).
		WithArgs(int64(6)).
		WillReturnRows(pgxmock.NewRows(cols))
	markPaid := regexp.QuoteMeta("WHERE id = $1 AND status <> $2")
	mock.ExpectExec(markPaid).
		WithArgs(int64(5), entity.PaymentStatusPaid).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	// already pagado: nothing updated, the row still exists
	mock.ExpectExec(markPaid).
		WithArgs(int64(5), entity.PaymentStatusPaid).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(5), int64(1), 45000.0, entity.PaymentStatusPaid, time.Now(), &paidAt))
	mock.ExpectExec(markPaid).
		WithArgs(int64(6), entity.PaymentStatusPaid).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE id = $1")).
		WithArgs(int64(6)).
		WillReturnRows(pgxmock.NewRows(cols))

	p, err := repo.FindByReservationID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.PaymentStatusPaid, p.Status)
	require.NotNil(t, p.PaidAt)

	p, err = repo.FindByID(context.Background(), 6)
	require.NoError(t, err)
	assert.Nil(t, p)

	changed, err := repo.MarkPaid(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkPaid(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = repo.MarkPaid(context.Background(), 6)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock, zap.NewNop())
	sent := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notifications")).
		WithArgs(int64(7), "hola", entity.NotificationReservationCreated).
		WillReturnRows(pgxmock.NewRows([]string{"id", "sent_at"}).AddRow(int64(1), sent))
	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "message", "type", "sent_at"}).
			AddRow(int64(1), int64(7), "hola", entity.NotificationReservationCreated, sent))

	n := &entity.Notification{UserID: 7, Message: "hola", Type: entity.NotificationReservationCreated}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, int64(1), n.ID)

	items, err := repo.FindByUserID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hola", items[0].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
