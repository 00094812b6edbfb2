package response

import (
	"time"

	"field-booking/internal/data/entity"
)

type NotificationResponse struct {
	ID      int64                   `json:"id"`
	Message string                  `json:"message"`
	Type    entity.NotificationType `json:"type"`
	SentAt  time.Time               `json:"sent_at"`
}

func NotificationsToResponse(items []*entity.Notification) []NotificationResponse {
	resp := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, NotificationResponse{
			ID:      n.ID,
			Message: n.Message,
			Type:    n.Type,
			SentAt:  n.SentAt,
		})
	}
	return resp
}
