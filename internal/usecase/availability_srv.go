package usecase

import (
	"context"
	"fmt"

	"field-booking/internal/data/repository"
	"field-booking/internal/dto/request"
	"field-booking/internal/dto/response"
	"field-booking/pkg/apperror"
	"field-booking/pkg/utils"

	"go.uber.org/zap"
)

// AvailabilityService answers whether slots are free. An answer is advisory:
// only ReservationService.Create claims a slot atomically.
type AvailabilityService interface {
	IsSlotFree(ctx context.Context, req *request.SlotCheckRequest) (*response.SlotStatusResponse, error)
	ListBookedSlots(ctx context.Context, req *request.AvailabilityRequest) ([]response.SlotResponse, error)
}

type availabilityService struct {
	reservations repository.ReservationRepository
	log          *zap.Logger
}

func NewAvailabilityService(reservations repository.ReservationRepository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		reservations: reservations,
		log:          log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) IsSlotFree(ctx context.Context, req *request.SlotCheckRequest) (*response.SlotStatusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Slot check validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
	}

	free, err := s.reservations.IsSlotFree(ctx, req.FieldID, req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}

	return &response.SlotStatusResponse{
		FieldID:   req.FieldID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Free:      free,
	}, nil
}

func (s *availabilityService) ListBookedSlots(ctx context.Context, req *request.AvailabilityRequest) ([]response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Availability validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
	}

	slots, err := s.reservations.FindActiveSlots(ctx, req.FieldID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("list booked slots: %w", err)
	}

	return response.SlotsToResponse(slots), nil
}
