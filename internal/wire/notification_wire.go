package wire

import (
	"field-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireNotification(r chi.Router, notificationHandler *adaptor.NotificationHandler) {
	r.Get("/notifications/{user_id}", notificationHandler.GetUserNotifications)
}
