package wire

import (
	"net/http"

	"field-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireField(
	r chi.Router,
	fieldHandler *adaptor.FieldHandler,
	adminGate func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/fields", fieldHandler.GetFields)

	// ==================== ADMIN ROUTES ====================
	r.Route("/admin/fields", func(r chi.Router) {
		r.Use(adminGate)

		r.Get("/", fieldHandler.GetFields)
		r.Post("/", fieldHandler.CreateField)
		r.Get("/{id}", fieldHandler.GetFieldByID)
		r.Put("/{id}", fieldHandler.UpdateField)
		r.Delete("/{id}", fieldHandler.DeleteField)
	})
}
