package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"field-booking/internal/data/entity"
	"field-booking/internal/data/repository"
	"field-booking/internal/dto/request"
	"field-booking/internal/dto/response"
	"field-booking/pkg/apperror"
	"field-booking/pkg/utils"

	"go.uber.org/zap"
)

const qrServiceURL = "https://api.qrserver.com/v1/create-qr-code/"

type PaymentService interface {
	CreatePayment(ctx context.Context, req *request.CreatePaymentRequest) (*response.PaymentStateResponse, error)
	ConfirmPayment(ctx context.Context, id int64) (*response.PaymentStateResponse, error)
	GetPayment(ctx context.Context, id int64) (*response.PaymentResponse, error)
	GetPaymentByReservation(ctx context.Context, reservationID int64) (*response.PaymentResponse, error)
	NequiQR(ctx context.Context, req *request.NequiPayRequest) (*response.QRResponse, error)
}

type paymentService struct {
	repo          *repository.Repository
	notifications NotificationService
	log           *zap.Logger
}

func NewPaymentService(repo *repository.Repository, notifications NotificationService, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:          repo,
		notifications: notifications,
		log:           log.With(zap.String("service", "payment")),
	}
}

// CreatePayment starts the simulated payment of a reservation. A reservation
// has at most one payment; asking again returns the existing one.
func (s *paymentService) CreatePayment(ctx context.Context, req *request.CreatePaymentRequest) (*response.PaymentStateResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, req.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: reservation %d", apperror.ErrNotFound, req.ReservationID)
	}
	if reservation.Status == entity.ReservationStatusCancelled {
		return nil, fmt.Errorf("%w: reservation %d is cancelled", apperror.ErrValidation, req.ReservationID)
	}

	payment := &entity.Payment{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Status:        entity.PaymentStatusPending,
	}
	created, err := s.repo.Payment.CreateOnce(ctx, payment)
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, fmt.Errorf("%w: reservation %d", apperror.ErrNotFound, req.ReservationID)
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if !created {
		existing, err := s.repo.Payment.FindByReservationID(ctx, req.ReservationID)
		if err != nil {
			return nil, fmt.Errorf("find payment: %w", err)
		}
		if existing == nil {
			// deleted between the insert and the lookup
			return nil, fmt.Errorf("%w: payment for reservation %d", apperror.ErrNotFound, req.ReservationID)
		}
		s.log.Info("Payment already exists", zap.Int64("payment_id", existing.ID), zap.Int64("reservation_id", req.ReservationID))
		return &response.PaymentStateResponse{PaymentID: existing.ID, Status: existing.Status}, nil
	}

	s.log.Info("Payment created",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("reservation_id", payment.ReservationID),
		zap.Float64("amount", payment.Amount),
	)

	return &response.PaymentStateResponse{PaymentID: payment.ID, Status: payment.Status}, nil
}

// ConfirmPayment moves a payment to pagado. It never moves back.
func (s *paymentService) ConfirmPayment(ctx context.Context, id int64) (*response.PaymentStateResponse, error) {
	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %d", apperror.ErrNotFound, id)
	}

	if payment.Status != entity.PaymentStatusPaid {
		changed, err := s.repo.Payment.MarkPaid(ctx, id)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, fmt.Errorf("%w: payment %d", apperror.ErrNotFound, id)
			}
			return nil, fmt.Errorf("confirm payment: %w", err)
		}

		// only the confirm that flipped the row notifies
		if changed {
			s.log.Info("Payment confirmed", zap.Int64("payment_id", id))
			s.notifyPaid(ctx, payment)
		}
	}

	return &response.PaymentStateResponse{PaymentID: id, Status: entity.PaymentStatusPaid}, nil
}

func (s *paymentService) notifyPaid(ctx context.Context, payment *entity.Payment) {
	reservation, err := s.repo.Reservation.FindByID(ctx, payment.ReservationID)
	if err != nil || reservation == nil {
		s.log.Warn("Skipping payment notification", zap.Int64("payment_id", payment.ID), zap.Error(err))
		return
	}
	s.notifications.Notify(ctx, reservation.UserID, entity.NotificationPaymentPaid,
		fmt.Sprintf("Pago #%d de la reserva #%d confirmado", payment.ID, payment.ReservationID))
}

// GetPayment returns nil, nil for an unknown id.
func (s *paymentService) GetPayment(ctx context.Context, id int64) (*response.PaymentResponse, error) {
	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return response.PaymentToResponse(payment), nil
}

// GetPaymentByReservation returns nil, nil when the reservation has no payment.
func (s *paymentService) GetPaymentByReservation(ctx context.Context, reservationID int64) (*response.PaymentResponse, error) {
	payment, err := s.repo.Payment.FindByReservationID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("get payment by reservation: %w", err)
	}
	return response.PaymentToResponse(payment), nil
}

// NequiQR builds the QR image URL for a simulated Nequi transfer.
func (s *paymentService) NequiQR(_ context.Context, req *request.NequiPayRequest) (*response.QRResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
	}

	reference := req.Reference
	if reference == "" {
		reference = utils.GeneratePaymentReference()
	}

	q := url.Values{}
	q.Set("size", "200x200")
	q.Set("data", "PAGO-"+reference+"-"+strconv.FormatFloat(req.Amount, 'f', -1, 64))

	s.log.Info("Nequi QR generated", zap.String("reference", reference), zap.String("phone", req.Phone))

	return &response.QRResponse{QR: qrServiceURL + "?" + q.Encode()}, nil
}
