package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"field-booking/internal/usecase"
	"field-booking/pkg/apperror"
	"field-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Field        *FieldHandler
	Reservation  *ReservationHandler
	Payment      *PaymentHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Field:        NewFieldHandler(service.Field, log),
		Reservation:  NewReservationHandler(service.Reservation, service.Availability, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}

// handleServiceError maps usecase errors onto HTTP statuses. Anything that is
// not a known client error is logged and answered with a generic 500 so store
// details never reach the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseBadRequest(w, clientMessage(err, apperror.ErrValidation), nil)

	case errors.Is(err, apperror.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err), zap.String("operation", operation))
		utils.ResponseUnauthorized(w, clientMessage(err, apperror.ErrUnauthorized))

	case errors.Is(err, apperror.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err), zap.String("operation", operation))
		utils.ResponseNotFound(w, clientMessage(err, apperror.ErrNotFound))

	case errors.Is(err, apperror.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err), zap.String("operation", operation))
		utils.ResponseConflict(w, clientMessage(err, apperror.ErrConflict))

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "internal server error")
	}
}

// clientMessage drops the sentinel prefix from "sentinel: detail" errors.
func clientMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// pathID reads a positive id path parameter, answering 400 when it is not one.
func pathID(w http.ResponseWriter, raw, name string) (int64, bool) {
	id, ok := utils.ParseID(raw)
	if !ok {
		utils.ResponseBadRequest(w, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}
