package response

import (
	"time"

	"field-booking/internal/data/entity"
)

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type ClearHistoryResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type ReservationResponse struct {
	ID        int64                    `json:"id"`
	UserID    int64                    `json:"user_id"`
	FieldID   int64                    `json:"field_id"`
	Date      string                   `json:"date"`
	StartTime string                   `json:"start_time"`
	EndTime   string                   `json:"end_time"`
	Status    entity.ReservationStatus `json:"status"`
	FieldName string                   `json:"field_name,omitempty"`
	FullName  string                   `json:"full_name,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

type SlotStatusResponse struct {
	FieldID   int64  `json:"field_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	Free      bool   `json:"free"`
}

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		FieldID:   r.FieldID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

// ReservationsToResponse keeps full_name only when withOwner is set; users
// listing their own reservations get the field name alone.
func ReservationsToResponse(details []*entity.ReservationDetail, withOwner bool) []ReservationResponse {
	resp := make([]ReservationResponse, 0, len(details))
	for _, d := range details {
		item := ReservationToResponse(&d.Reservation)
		item.FieldName = d.FieldName
		if withOwner {
			item.FullName = d.UserFullName
		}
		resp = append(resp, item)
	}
	return resp
}

func SlotsToResponse(slots []entity.Slot) []SlotResponse {
	resp := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return resp
}
