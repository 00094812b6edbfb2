package response

import (
	"time"

	"field-booking/internal/data/entity"
)

// PaymentStateResponse is returned by create and confirm.
type PaymentStateResponse struct {
	PaymentID int64                `json:"payment_id"`
	Status    entity.PaymentStatus `json:"estado"`
}

type PaymentResponse struct {
	ID            int64                `json:"id"`
	ReservationID int64                `json:"reserva_id"`
	Amount        float64              `json:"monto"`
	Status        entity.PaymentStatus `json:"estado"`
	CreatedAt     time.Time            `json:"created_at"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
}

type QRResponse struct {
	QR string `json:"qr"`
}

func PaymentToResponse(p *entity.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		PaidAt:        p.PaidAt,
	}
}
