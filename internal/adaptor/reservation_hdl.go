package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"field-booking/internal/dto/request"
	"field-booking/internal/dto/response"
	"field-booking/internal/usecase"
	"field-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service      usecase.ReservationService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewReservationHandler(
	service usecase.ReservationService,
	availability usecase.AvailabilityService,
	log *zap.Logger,
) *ReservationHandler {
	return &ReservationHandler{
		service:      service,
		availability: availability,
		log:          log.With(zap.String("handler", "reservation")),
	}
}

// GetAvailability handles GET /api/availability?field_id=1&date=2024-01-01
func (h *ReservationHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fieldID, err := strconv.ParseInt(query.Get("field_id"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"field_id": "Must be a number"})
		return
	}

	req := request.AvailabilityRequest{FieldID: fieldID, Date: query.Get("date")}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slots, err := h.availability.ListBookedSlots(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, slots)
}

// GetSlotStatus handles GET /api/availability/slot?field_id=1&date=2024-01-01&start_time=10:00
// The answer is advisory; only CreateReservation claims the slot.
func (h *ReservationHandler) GetSlotStatus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fieldID, err := strconv.ParseInt(query.Get("field_id"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"field_id": "Must be a number"})
		return
	}

	req := request.SlotCheckRequest{
		FieldID:   fieldID,
		Date:      query.Get("date"),
		StartTime: query.Get("start_time"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	status, err := h.availability.IsSlotFree(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check slot")
		return
	}

	utils.ResponseSuccess(w, status)
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, created)
}

// GetUserReservations handles GET /api/reservations/{id}, where id is the user id
func (h *ReservationHandler) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, chi.URLParam(r, "id"), "user id")
	if !ok {
		return
	}

	reservations, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list user reservations")
		return
	}

	utils.ResponseSuccess(w, reservations)
}

// CancelReservation handles DELETE /api/reservations/{id}
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "reservation id")
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseMessage(w, "Cancelada")
}

// ClearHistory handles DELETE /api/history/{user_id}
func (h *ReservationHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, chi.URLParam(r, "user_id"), "user id")
	if !ok {
		return
	}

	deleted, err := h.service.ClearHistory(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "clear history")
		return
	}

	utils.ResponseSuccess(w, response.ClearHistoryResponse{
		Message: "Historial borrado correctamente",
		Deleted: deleted,
	})
}

// AdminListReservations handles GET /api/admin/reservations
func (h *ReservationHandler) AdminListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.AdminList(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, reservations)
}

// AdminUpdateReservation handles PUT /api/admin/reservations/{id}
func (h *ReservationHandler) AdminUpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "reservation id")
	if !ok {
		return
	}

	var req request.AdminUpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AdminUpdate(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "update reservation")
		return
	}

	utils.ResponseMessage(w, "Reserva actualizada")
}

// AdminDeleteReservation handles DELETE /api/admin/reservations/{id}
func (h *ReservationHandler) AdminDeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "reservation id")
	if !ok {
		return
	}

	if err := h.service.AdminDelete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete reservation")
		return
	}

	utils.ResponseMessage(w, "Reserva eliminada")
}
