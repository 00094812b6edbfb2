package usecase

import (
	"context"
	"testing"

	"field-booking/internal/dto/request"
	"field-booking/internal/dto/response"
	"field-booking/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityService_ListBookedSlots(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, "a@x.com")

	_, err := svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "16:00", "17:00"))
	require.NoError(t, err)
	cancelled, err := svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "12:00", "13:00"))
	require.NoError(t, err)
	_, err = svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "08:00", "09:30"))
	require.NoError(t, err)
	_, err = svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-02", "08:00", "09:00"))
	require.NoError(t, err)
	require.NoError(t, svc.Reservation.Cancel(ctx, cancelled.ID))

	slots, err := svc.Availability.ListBookedSlots(ctx, &request.AvailabilityRequest{FieldID: 1, Date: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, []response.SlotResponse{
		{StartTime: "08:00", EndTime: "09:30"},
		{StartTime: "16:00", EndTime: "17:00"},
	}, slots)

	free, err := svc.Availability.IsSlotFree(ctx, &request.SlotCheckRequest{FieldID: 1, Date: "2024-01-01", StartTime: "12:00"})
	require.NoError(t, err)
	assert.True(t, free.Free)

	free, err = svc.Availability.IsSlotFree(ctx, &request.SlotCheckRequest{FieldID: 1, Date: "2024-01-01", StartTime: "16:00"})
	require.NoError(t, err)
	assert.False(t, free.Free)

	free, err = svc.Availability.IsSlotFree(ctx, &request.SlotCheckRequest{FieldID: 2, Date: "2024-01-01", StartTime: "16:00"})
	require.NoError(t, err)
	assert.True(t, free.Free)
}

func TestAvailabilityService_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Availability.ListBookedSlots(context.Background(), &request.AvailabilityRequest{FieldID: 1, Date: "tomorrow"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Availability.IsSlotFree(context.Background(), &request.SlotCheckRequest{FieldID: 1, Date: "2024-01-01", StartTime: "6pm"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
