package usecase

import (
	"context"
	"testing"

	"field-booking/internal/dto/request"
	"field-booking/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldService_ListSeeded(t *testing.T) {
	svc, _ := newTestService(t)

	fields, err := svc.Field.List(context.Background())
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Cancha 1", fields[0].Name)
	assert.Equal(t, "Cancha 2", fields[1].Name)
}

func TestFieldService_CRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Field.Create(ctx, &request.FieldRequest{Name: "Cancha 3", Location: "Centro", PricePerHour: 60000})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	updated, err := svc.Field.Update(ctx, created.ID, &request.FieldRequest{Name: "Cancha 3B", Location: "Centro", PricePerHour: 65000})
	require.NoError(t, err)
	assert.Equal(t, "Cancha 3B", updated.Name)

	got, err := svc.Field.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 65000.0, got.PricePerHour)

	require.NoError(t, svc.Field.Delete(ctx, created.ID))

	_, err = svc.Field.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFieldService_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Field.Create(ctx, &request.FieldRequest{Name: "", Location: "x", PricePerHour: 0})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Field.Update(ctx, 99, &request.FieldRequest{Name: "x", Location: "y", PricePerHour: 1})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.ErrorIs(t, svc.Field.Delete(ctx, 99), apperror.ErrNotFound)
}

func TestFieldService_DeleteWithReservations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, "a@x.com")

	_, err := svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)

	err = svc.Field.Delete(ctx, 1)
	require.ErrorIs(t, err, apperror.ErrConflict)

	fields, err := svc.Field.List(ctx)
	require.NoError(t, err)
	assert.Len(t, fields, 2)
}
