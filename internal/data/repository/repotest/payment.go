package repotest

import (
	"context"
	"fmt"
	"sort"

	"field-booking/internal/data/entity"
	"field-booking/pkg/apperror"
)

type paymentRepo struct{ s *store }

func (r *paymentRepo) CreateOnce(_ context.Context, payment *entity.Payment) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reservations[payment.ReservationID]; !ok {
		return false, fmt.Errorf("create payment for reservation %d: %w: payments_reservation_id_fkey",
			payment.ReservationID, apperror.ErrConflict)
	}
	for _, p := range r.s.payments {
		if p.ReservationID == payment.ReservationID {
			return false, nil
		}
	}

	payment.ID = r.s.id("payments")
	payment.CreatedAt = r.s.now()
	cp := *payment
	r.s.payments[cp.ID] = &cp
	return true, nil
}

func (r *paymentRepo) FindByID(_ context.Context, id int64) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *paymentRepo) FindByReservationID(_ context.Context, reservationID int64) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.payments {
		if p.ReservationID == reservationID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *paymentRepo) MarkPaid(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[id]
	if !ok {
		return false, fmt.Errorf("payment %d: %w", id, apperror.ErrNotFound)
	}
	if p.Status == entity.PaymentStatusPaid {
		return false, nil
	}
	p.Status = entity.PaymentStatusPaid
	if p.PaidAt == nil {
		now := r.s.now()
		p.PaidAt = &now
	}
	return true, nil
}

type notificationRepo struct{ s *store }

func (r *notificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[n.UserID]; !ok {
		return fmt.Errorf("create notification for user %d: %w: notifications_user_id_fkey", n.UserID, apperror.ErrConflict)
	}

	n.ID = r.s.id("notifications")
	n.SentAt = r.s.now()
	cp := *n
	r.s.notifications[cp.ID] = &cp
	return nil
}

func (r *notificationRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	notifications := []*entity.Notification{}
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			cp := *n
			notifications = append(notifications, &cp)
		}
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID > notifications[j].ID })
	return notifications, nil
}
