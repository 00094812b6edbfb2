package entity

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pendiente"
	PaymentStatusPaid    PaymentStatus = "pagado"
)

type Payment struct {
	Base
	ReservationID int64         `db:"reservation_id"`
	Amount        float64       `db:"amount"`
	Status        PaymentStatus `db:"status"`
	PaidAt        *time.Time    `db:"paid_at"`
}
