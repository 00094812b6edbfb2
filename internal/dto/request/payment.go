package request

type CreatePaymentRequest struct {
	ReservationID int64   `json:"reserva_id" validate:"required,gt=0"`
	Amount        float64 `json:"monto" validate:"gt=0"`
}

type NequiPayRequest struct {
	Phone     string  `json:"phone" validate:"required,min=7,max=20"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Reference string  `json:"reference" validate:"omitempty,max=64"`
}
