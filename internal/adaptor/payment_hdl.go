package adaptor

import (
	"encoding/json"
	"net/http"

	"field-booking/internal/dto/request"
	"field-booking/internal/usecase"
	"field-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreatePayment handles POST /api/payments/create
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment")
		return
	}

	utils.ResponseSuccess(w, payment)
}

// ConfirmPayment handles POST /api/payments/confirm/{id}
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "payment id")
	if !ok {
		return
	}

	payment, err := h.service.ConfirmPayment(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, payment)
}

// GetPayment handles GET /api/payments/{id}. An unknown id answers null.
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "payment id")
	if !ok {
		return
	}

	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, payment)
}

// GetPaymentByReservation handles GET /api/payments/by-reserva/{reserva_id}.
// A reservation without payment answers {}.
func (h *PaymentHandler) GetPaymentByReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, ok := pathID(w, chi.URLParam(r, "reserva_id"), "reservation id")
	if !ok {
		return
	}

	payment, err := h.service.GetPaymentByReservation(r.Context(), reservationID)
	if err != nil {
		handleServiceError(w, h.log, err, "get payment by reservation")
		return
	}

	if payment == nil {
		utils.ResponseSuccess(w, struct{}{})
		return
	}
	utils.ResponseSuccess(w, payment)
}

// NequiPay handles POST /api/nequi/pay
func (h *PaymentHandler) NequiPay(w http.ResponseWriter, r *http.Request) {
	var req request.NequiPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	qr, err := h.service.NequiQR(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "nequi pay")
		return
	}

	utils.ResponseSuccess(w, qr)
}
