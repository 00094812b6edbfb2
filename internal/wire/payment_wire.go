package wire

import (
	"field-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	r.Post("/payments/create", paymentHandler.CreatePayment)
	r.Post("/payments/confirm/{id}", paymentHandler.ConfirmPayment)
	r.Get("/payments/by-reserva/{reserva_id}", paymentHandler.GetPaymentByReservation)
	r.Get("/payments/{id}", paymentHandler.GetPayment)

	// simulated Nequi transfer, answers a QR image URL
	r.Post("/nequi/pay", paymentHandler.NequiPay)
}
