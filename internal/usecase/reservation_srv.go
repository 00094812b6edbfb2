package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"field-booking/internal/data/entity"
	"field-booking/internal/data/repository"
	"field-booking/internal/dto/request"
	"field-booking/internal/dto/response"
	"field-booking/pkg/apperror"
	"field-booking/pkg/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// MsgSlotTaken is the message clients show when a slot is already reserved.
const MsgSlotTaken = "Horario ya reservado. Elige otro."

var tracer = otel.Tracer("field-booking/usecase")

type ReservationService interface {
	Create(ctx context.Context, req *request.CreateReservationRequest) (*response.CreatedResponse, error)
	Cancel(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]response.ReservationResponse, error)
	ClearHistory(ctx context.Context, userID int64) (int64, error)

	// Admin operations skip the availability pre-check but not the
	// one-active-reservation-per-slot rule of the store.
	AdminList(ctx context.Context) ([]response.ReservationResponse, error)
	AdminUpdate(ctx context.Context, id int64, req *request.AdminUpdateReservationRequest) error
	AdminDelete(ctx context.Context, id int64) error
}

type reservationService struct {
	repo          *repository.Repository
	notifications NotificationService
	log           *zap.Logger
}

func NewReservationService(repo *repository.Repository, notifications NotificationService, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:          repo,
		notifications: notifications,
		log:           log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Create(ctx context.Context, req *request.CreateReservationRequest) (*response.CreatedResponse, error) {
	ctx, span := tracer.Start(ctx, "reservation.create", trace.WithAttributes(
		attribute.Int64("field.id", req.FieldID),
		attribute.String("reservation.date", req.Date),
		attribute.String("reservation.start_time", req.StartTime),
	))
	defer span.End()

	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
	}
	if err := checkInterval(req.Date, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	// 2. Field and user must exist
	field, err := s.repo.Field.FindByID(ctx, req.FieldID)
	if err != nil {
		return nil, fmt.Errorf("find field: %w", err)
	}
	if field == nil {
		return nil, fmt.Errorf("%w: field %d", apperror.ErrNotFound, req.FieldID)
	}

	user, err := s.repo.User.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", apperror.ErrNotFound, req.UserID)
	}

	// 3. Claim the slot
	reservation := &entity.Reservation{
		UserID:    req.UserID,
		FieldID:   req.FieldID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Reservation.CreateIfFree(ctx, reservation); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			span.SetAttributes(attribute.Bool("reservation.slot_taken", true))
			return nil, fmt.Errorf("%w: %s", apperror.ErrConflict, MsgSlotTaken)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "create reservation failed")
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("user_id", reservation.UserID),
		zap.String("slot", repository.SlotKey(reservation.FieldID, reservation.Date, reservation.StartTime)),
	)

	s.notifications.Notify(ctx, reservation.UserID, entity.NotificationReservationCreated,
		fmt.Sprintf("Reserva #%d en %s el %s a las %s", reservation.ID, field.Name, reservation.Date, reservation.StartTime))

	return &response.CreatedResponse{ID: reservation.ID}, nil
}

// Cancel frees the slot. Cancelling twice is a no-op.
func (s *reservationService) Cancel(ctx context.Context, id int64) error {
	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %d", apperror.ErrNotFound, id)
	}
	if reservation.Status == entity.ReservationStatusCancelled {
		return nil
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, id, entity.ReservationStatusCancelled); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("%w: reservation %d", apperror.ErrNotFound, id)
		}
		return fmt.Errorf("cancel reservation: %w", err)
	}

	s.log.Info("Reservation cancelled", zap.Int64("reservation_id", id))

	s.notifications.Notify(ctx, reservation.UserID, entity.NotificationReservationCancelled,
		fmt.Sprintf("Reserva #%d cancelada", id))

	return nil
}

func (s *reservationService) ListForUser(ctx context.Context, userID int64) ([]response.ReservationResponse, error) {
	details, err := s.repo.Reservation.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return response.ReservationsToResponse(details, false), nil
}

// ClearHistory hard-deletes every reservation of the user and reports how many went.
func (s *reservationService) ClearHistory(ctx context.Context, userID int64) (int64, error) {
	deleted, err := s.repo.Reservation.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}

	s.log.Info("History cleared", zap.Int64("user_id", userID), zap.Int64("deleted", deleted))
	return deleted, nil
}

func (s *reservationService) AdminList(ctx context.Context) ([]response.ReservationResponse, error) {
	details, err := s.repo.Reservation.FindAllDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return response.ReservationsToResponse(details, true), nil
}

func (s *reservationService) AdminUpdate(ctx context.Context, id int64, req *request.AdminUpdateReservationRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin update validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
	}
	if err := checkInterval(req.Date, req.StartTime, req.EndTime); err != nil {
		return err
	}

	current, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find reservation: %w", err)
	}
	if current == nil {
		return fmt.Errorf("%w: reservation %d", apperror.ErrNotFound, id)
	}

	status := entity.ReservationStatus(req.Status)
	if current.Status == entity.ReservationStatusCancelled && status.Active() {
		return fmt.Errorf("%w: cancelled reservation %d cannot be reactivated", apperror.ErrValidation, id)
	}

	updated := &entity.Reservation{
		Base:      current.Base,
		UserID:    current.UserID,
		FieldID:   current.FieldID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    status,
	}
	if err := s.repo.Reservation.Update(ctx, updated); err != nil {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return fmt.Errorf("%w: reservation %d", apperror.ErrNotFound, id)
		case errors.Is(err, apperror.ErrConflict):
			return fmt.Errorf("%w: %s", apperror.ErrConflict, MsgSlotTaken)
		case errors.Is(err, apperror.ErrValidation):
			return fmt.Errorf("%w: cancelled reservation %d cannot be reactivated", apperror.ErrValidation, id)
		}
		return fmt.Errorf("update reservation: %w", err)
	}

	s.log.Info("Reservation updated by admin",
		zap.Int64("reservation_id", id),
		zap.String("status", req.Status),
	)
	return nil
}

func (s *reservationService) AdminDelete(ctx context.Context, id int64) error {
	if err := s.repo.Reservation.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("%w: reservation %d", apperror.ErrNotFound, id)
		}
		return fmt.Errorf("delete reservation: %w", err)
	}

	s.log.Info("Reservation deleted by admin", zap.Int64("reservation_id", id))
	return nil
}

// checkInterval requires a real calendar date and end after start.
func checkInterval(date, start, end string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: invalid date %q", apperror.ErrValidation, date)
	}
	from, err := time.Parse(timeLayout, start)
	if err != nil {
		return fmt.Errorf("%w: invalid start_time %q", apperror.ErrValidation, start)
	}
	to, err := time.Parse(timeLayout, end)
	if err != nil {
		return fmt.Errorf("%w: invalid end_time %q", apperror.ErrValidation, end)
	}
	if !to.After(from) {
		return fmt.Errorf("%w: end_time must be after start_time", apperror.ErrValidation)
	}
	return nil
}
