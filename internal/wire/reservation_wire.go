package wire

import (
	"net/http"

	"field-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	adminGate func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/availability", reservationHandler.GetAvailability)
	r.Get("/availability/slot", reservationHandler.GetSlotStatus)

	r.Post("/reservations", reservationHandler.CreateReservation)
	// one param name per segment; on GET the id is the user's
	r.Get("/reservations/{id}", reservationHandler.GetUserReservations)
	r.Delete("/reservations/{id}", reservationHandler.CancelReservation)

	// hard delete of every reservation of the user
	r.Delete("/history/{user_id}", reservationHandler.ClearHistory)

	// ==================== ADMIN ROUTES ====================
	r.Route("/admin/reservations", func(r chi.Router) {
		r.Use(adminGate)

		r.Get("/", reservationHandler.AdminListReservations)
		r.Put("/{id}", reservationHandler.AdminUpdateReservation)
		r.Delete("/{id}", reservationHandler.AdminDeleteReservation)
	})
}
