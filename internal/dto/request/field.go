package request

type FieldRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Location     string  `json:"location" validate:"required,min=1,max=200"`
	PricePerHour float64 `json:"price_per_hour" validate:"gt=0"`
}
