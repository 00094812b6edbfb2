package repository

import (
	"field-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Field        FieldRepository
	Reservation  ReservationRepository
	Payment      PaymentRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Field:        NewFieldRepository(db, log),
		Reservation:  NewReservationRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
