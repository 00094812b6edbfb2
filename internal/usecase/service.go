package usecase

import (
	"field-booking/internal/data/repository"
	"field-booking/pkg/mq"
	"field-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Field        FieldService
	Availability AvailabilityService
	Reservation  ReservationService
	Payment      PaymentService
	Notification NotificationService
}

func NewService(repo *repository.Repository, publisher mq.Publisher, config *utils.Config, log *zap.Logger) *Service {
	notification := NewNotificationService(repo.Notification, publisher, log)

	return &Service{
		Auth:         NewAuthService(repo.User, log),
		Field:        NewFieldService(repo.Field, log),
		Availability: NewAvailabilityService(repo.Reservation, log),
		Reservation:  NewReservationService(repo, notification, log),
		Payment:      NewPaymentService(repo, notification, log),
		Notification: notification,
	}
}
