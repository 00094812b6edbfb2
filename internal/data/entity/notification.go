package entity

import "time"

type NotificationType string

const (
	NotificationReservationCreated   NotificationType = "reservation.created"
	NotificationReservationCancelled NotificationType = "reservation.cancelled"
	NotificationPaymentPaid          NotificationType = "payment.paid"
)

type Notification struct {
	ID      int64            `db:"id"`
	UserID  int64            `db:"user_id"`
	Message string           `db:"message"`
	Type    NotificationType `db:"type"`
	SentAt  time.Time        `db:"sent_at"`
}
