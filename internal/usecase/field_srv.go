package usecase

import (
	"context"
	"errors"
	"fmt"

	"field-booking/internal/data/entity"
	"field-booking/internal/data/repository"
	"field-booking/internal/dto/request"
	"field-booking/internal/dto/response"
	"field-booking/pkg/apperror"
	"field-booking/pkg/utils"

	"go.uber.org/zap"
)

type FieldService interface {
	List(ctx context.Context) ([]response.FieldResponse, error)
	Get(ctx context.Context, id int64) (*response.FieldResponse, error)
	Create(ctx context.Context, req *request.FieldRequest) (*response.FieldResponse, error)
	Update(ctx context.Context, id int64, req *request.FieldRequest) (*response.FieldResponse, error)
	Delete(ctx context.Context, id int64) error
}

type fieldService struct {
	fields repository.FieldRepository
	log    *zap.Logger
}

func NewFieldService(fields repository.FieldRepository, log *zap.Logger) FieldService {
	return &fieldService{
		fields: fields,
		log:    log.With(zap.String("service", "field")),
	}
}

func (s *fieldService) List(ctx context.Context) ([]response.FieldResponse, error) {
	fields, err := s.fields.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return response.FieldsToResponse(fields), nil
}

func (s *fieldService) Get(ctx context.Context, id int64) (*response.FieldResponse, error) {
	field, err := s.fields.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get field: %w", err)
	}
	if field == nil {
		return nil, fmt.Errorf("%w: field %d", apperror.ErrNotFound, id)
	}

	resp := response.FieldToResponse(field)
	return &resp, nil
}

func (s *fieldService) Create(ctx context.Context, req *request.FieldRequest) (*response.FieldResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
	}

	field := &entity.Field{
		Name:         req.Name,
		Location:     req.Location,
		PricePerHour: req.PricePerHour,
	}
	if err := s.fields.Create(ctx, field); err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}

	s.log.Info("Field created", zap.Int64("field_id", field.ID), zap.String("name", field.Name))

	resp := response.FieldToResponse(field)
	return &resp, nil
}

func (s *fieldService) Update(ctx context.Context, id int64, req *request.FieldRequest) (*response.FieldResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, utils.FormatValidationErrors(errs))
	}

	field := &entity.Field{
		ID:           id,
		Name:         req.Name,
		Location:     req.Location,
		PricePerHour: req.PricePerHour,
	}
	if err := s.fields.Update(ctx, field); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("%w: field %d", apperror.ErrNotFound, id)
		}
		return nil, fmt.Errorf("update field: %w", err)
	}

	s.log.Info("Field updated", zap.Int64("field_id", id))

	resp := response.FieldToResponse(field)
	return &resp, nil
}

// Delete refuses to remove a field that reservations still point at.
func (s *fieldService) Delete(ctx context.Context, id int64) error {
	err := s.fields.Delete(ctx, id)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return fmt.Errorf("%w: field %d", apperror.ErrNotFound, id)
	case errors.Is(err, apperror.ErrConflict):
		return fmt.Errorf("%w: field %d has reservations", apperror.ErrConflict, id)
	case err != nil:
		return fmt.Errorf("delete field: %w", err)
	}
	return nil
}
