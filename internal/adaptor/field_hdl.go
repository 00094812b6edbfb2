package adaptor

import (
	"encoding/json"
	"net/http"

	"field-booking/internal/dto/request"
	"field-booking/internal/usecase"
	"field-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FieldHandler struct {
	service usecase.FieldService
	log     *zap.Logger
}

func NewFieldHandler(service usecase.FieldService, log *zap.Logger) *FieldHandler {
	return &FieldHandler{
		service: service,
		log:     log.With(zap.String("handler", "field")),
	}
}

// GetFields handles GET /api/fields and GET /api/admin/fields
func (h *FieldHandler) GetFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list fields")
		return
	}

	utils.ResponseSuccess(w, fields)
}

// GetFieldByID handles GET /api/admin/fields/{id}
func (h *FieldHandler) GetFieldByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "field id")
	if !ok {
		return
	}

	field, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get field")
		return
	}

	utils.ResponseSuccess(w, field)
}

// CreateField handles POST /api/admin/fields
func (h *FieldHandler) CreateField(w http.ResponseWriter, r *http.Request) {
	var req request.FieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	field, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create field")
		return
	}

	utils.ResponseCreated(w, field)
}

// UpdateField handles PUT /api/admin/fields/{id}
func (h *FieldHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "field id")
	if !ok {
		return
	}

	var req request.FieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if _, err := h.service.Update(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "update field")
		return
	}

	utils.ResponseMessage(w, "Cancha actualizada")
}

// DeleteField handles DELETE /api/admin/fields/{id}
func (h *FieldHandler) DeleteField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "field id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete field")
		return
	}

	utils.ResponseMessage(w, "Cancha eliminada")
}
