package entity

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "Pendiente"
	ReservationStatusConfirmed ReservationStatus = "Confirmada"
	ReservationStatusCancelled ReservationStatus = "Cancelada"
)

// Active reports whether the reservation still holds its slot.
func (s ReservationStatus) Active() bool {
	return s != ReservationStatusCancelled
}

// Date is YYYY-MM-DD, StartTime and EndTime are HH:MM.
type Reservation struct {
	Base
	UserID    int64             `db:"user_id"`
	FieldID   int64             `db:"field_id"`
	Date      string            `db:"date"`
	StartTime string            `db:"start_time"`
	EndTime   string            `db:"end_time"`
	Status    ReservationStatus `db:"status"`
}

// ReservationDetail is a reservation joined with its field and owner names.
type ReservationDetail struct {
	Reservation
	FieldName    string `db:"field_name"`
	UserFullName string `db:"full_name"`
}

// Slot is the booked interval of an active reservation.
type Slot struct {
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}
