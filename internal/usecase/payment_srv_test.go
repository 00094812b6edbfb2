package usecase

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"

	"field-booking/internal/data/entity"
	"field-booking/internal/dto/request"
	"field-booking/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_Lifecycle(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, "a@x.com")

	res, err := svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)

	created, err := svc.Payment.CreatePayment(ctx, &request.CreatePaymentRequest{ReservationID: res.ID, Amount: 45000})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, created.Status)

	before, err := svc.Payment.GetPaymentByReservation(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, before)
	assert.Equal(t, entity.PaymentStatusPending, before.Status)
	assert.Nil(t, before.PaidAt)

	confirmed, err := svc.Payment.ConfirmPayment(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, confirmed.Status)

	after, err := svc.Payment.GetPaymentByReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, after.Status)
	require.NotNil(t, after.PaidAt)
	paidAt := *after.PaidAt

	// confirming again changes nothing
	again, err := svc.Payment.ConfirmPayment(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, again.Status)

	byID, err := svc.Payment.GetPayment(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, paidAt, *byID.PaidAt)
	assert.Equal(t, 45000.0, byID.Amount)

	assert.Equal(t, []string{
		string(entity.NotificationReservationCreated),
		string(entity.NotificationPaymentPaid),
	}, pub.keys())
}

func TestPaymentService_CreateIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, "a@x.com")

	res, err := svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)

	first, err := svc.Payment.CreatePayment(ctx, &request.CreatePaymentRequest{ReservationID: res.ID, Amount: 45000})
	require.NoError(t, err)
	_, err = svc.Payment.ConfirmPayment(ctx, first.PaymentID)
	require.NoError(t, err)

	second, err := svc.Payment.CreatePayment(ctx, &request.CreatePaymentRequest{ReservationID: res.ID, Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, first.PaymentID, second.PaymentID)
	assert.Equal(t, entity.PaymentStatusPaid, second.Status)
}

func TestPaymentService_CreateErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, "a@x.com")

	res, err := svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)
	cancelled, err := svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "11:00", "12:00"))
	require.NoError(t, err)
	require.NoError(t, svc.Reservation.Cancel(ctx, cancelled.ID))

	tests := []struct {
		name string
		req  request.CreatePaymentRequest
		want error
	}{
		{"zero amount", request.CreatePaymentRequest{ReservationID: res.ID, Amount: 0}, apperror.ErrValidation},
		{"negative amount", request.CreatePaymentRequest{ReservationID: res.ID, Amount: -5}, apperror.ErrValidation},
		{"unknown reservation", request.CreatePaymentRequest{ReservationID: 404, Amount: 10}, apperror.ErrNotFound},
		{"cancelled reservation", request.CreatePaymentRequest{ReservationID: cancelled.ID, Amount: 10}, apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Payment.CreatePayment(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPaymentService_Lookups(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Payment.ConfirmPayment(ctx, 7)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	p, err := svc.Payment.GetPayment(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = svc.Payment.GetPaymentByReservation(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPaymentService_NequiQR(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	qr, err := svc.Payment.NequiQR(ctx, &request.NequiPayRequest{Phone: "3001234567", Amount: 45000, Reference: "RES-1"})
	require.NoError(t, err)

	u, err := url.Parse(qr.QR)
	require.NoError(t, err)
	assert.Equal(t, "api.qrserver.com", u.Host)
	assert.Equal(t, "PAGO-RES-1-45000", u.Query().Get("data"))
	assert.Equal(t, "200x200", u.Query().Get("size"))

	qr, err = svc.Payment.NequiQR(ctx, &request.NequiPayRequest{Phone: "3001234567", Amount: 10.5})
	require.NoError(t, err)
	u, err = url.Parse(qr.QR)
	require.NoError(t, err)
	data := u.Query().Get("data")
	assert.True(t, strings.HasPrefix(data, "PAGO-RES-"), data)
	assert.True(t, strings.HasSuffix(data, "-10.5"), data)

	_, err = svc.Payment.NequiQR(ctx, &request.NequiPayRequest{Phone: "", Amount: 10})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestPaymentService_ConcurrentConfirmNotifiesOnce(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, "a@x.com")

	res, err := svc.Reservation.Create(ctx, reservationReq(userID, "2024-01-01", "10:00", "11:00"))
	require.NoError(t, err)
	created, err := svc.Payment.CreatePayment(ctx, &request.CreatePaymentRequest{ReservationID: res.ID, Amount: 45000})
	require.NoError(t, err)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			resp, err := svc.Payment.ConfirmPayment(ctx, created.PaymentID)
			assert.NoError(t, err)
			if resp != nil {
				assert.Equal(t, entity.PaymentStatusPaid, resp.Status)
			}
		}()
	}
	close(start)
	wg.Wait()

	paid := 0
	for _, key := range pub.keys() {
		if key == string(entity.NotificationPaymentPaid) {
			paid++
		}
	}
	assert.Equal(t, 1, paid)
}
