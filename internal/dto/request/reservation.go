package request

// Dates are YYYY-MM-DD and times HH:MM on a 24h clock.
type CreateReservationRequest struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	FieldID   int64  `json:"field_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type AdminUpdateReservationRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Status    string `json:"status" validate:"required,oneof=Pendiente Confirmada Cancelada"`
}

type SlotCheckRequest struct {
	FieldID   int64  `json:"field_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
}

type AvailabilityRequest struct {
	FieldID int64  `json:"field_id" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
}
