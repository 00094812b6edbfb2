package response

import "field-booking/internal/data/entity"

type FieldResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	PricePerHour float64 `json:"price_per_hour"`
}

func FieldToResponse(f *entity.Field) FieldResponse {
	return FieldResponse{
		ID:           f.ID,
		Name:         f.Name,
		Location:     f.Location,
		PricePerHour: f.PricePerHour,
	}
}

func FieldsToResponse(fields []*entity.Field) []FieldResponse {
	resp := make([]FieldResponse, 0, len(fields))
	for _, f := range fields {
		resp = append(resp, FieldToResponse(f))
	}
	return resp
}
