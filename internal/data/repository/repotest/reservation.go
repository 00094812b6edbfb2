package repotest

import (
	"context"
	"fmt"
	"sort"

	"field-booking/internal/data/entity"
	"field-booking/internal/data/repository"
	"field-booking/pkg/apperror"
)

type reservationRepo struct{ s *store }

func (r *reservationRepo) IsSlotFree(_ context.Context, fieldID int64, date, startTime string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return !r.s.slotTaken(0, fieldID, date, startTime), nil
}

func (r *reservationRepo) CreateIfFree(_ context.Context, reservation *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := repository.SlotKey(reservation.FieldID, reservation.Date, reservation.StartTime)
	if _, ok := r.s.fields[reservation.FieldID]; !ok {
		return fmt.Errorf("reserve %s: %w: reservations_field_id_fkey", key, apperror.ErrConflict)
	}
	if _, ok := r.s.users[reservation.UserID]; !ok {
		return fmt.Errorf("reserve %s: %w: reservations_user_id_fkey", key, apperror.ErrConflict)
	}
	if r.s.slotTaken(0, reservation.FieldID, reservation.Date, reservation.StartTime) {
		return fmt.Errorf("reserve %s: %w", key, apperror.ErrConflict)
	}

	reservation.ID = r.s.id("reservations")
	reservation.Status = entity.ReservationStatusPending
	reservation.CreatedAt = r.s.now()
	cp := *reservation
	r.s.reservations[cp.ID] = &cp
	return nil
}

func (r *reservationRepo) FindByID(_ context.Context, id int64) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *reservationRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.ReservationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.details(func(res *entity.Reservation) bool { return res.UserID == userID }), nil
}

func (r *reservationRepo) FindAllDetailed(_ context.Context) ([]*entity.ReservationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.details(func(*entity.Reservation) bool { return true }), nil
}

func (r *reservationRepo) details(match func(*entity.Reservation) bool) []*entity.ReservationDetail {
	details := []*entity.ReservationDetail{}
	for _, res := range r.s.reservations {
		if !match(res) {
			continue
		}
		d := &entity.ReservationDetail{Reservation: *res}
		if f, ok := r.s.fields[res.FieldID]; ok {
			d.FieldName = f.Name
		}
		if u, ok := r.s.users[res.UserID]; ok {
			d.UserFullName = u.FullName
		}
		details = append(details, d)
	}
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return details
}

func (r *reservationRepo) FindActiveSlots(_ context.Context, fieldID int64, date string) ([]entity.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slots := []entity.Slot{}
	for _, res := range r.s.reservations {
		if res.FieldID == fieldID && res.Date == date && res.Status.Active() {
			slots = append(slots, entity.Slot{StartTime: res.StartTime, EndTime: res.EndTime})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

func (r *reservationRepo) UpdateStatus(_ context.Context, id int64, status entity.ReservationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %d: %w", id, apperror.ErrNotFound)
	}
	if status.Active() && !res.Status.Active() && r.s.slotTaken(id, res.FieldID, res.Date, res.StartTime) {
		return fmt.Errorf("update reservation %d status to %s: %w", id, status, apperror.ErrConflict)
	}
	res.Status = status
	return nil
}

func (r *reservationRepo) Update(_ context.Context, reservation *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[reservation.ID]
	if !ok {
		return fmt.Errorf("reservation %d: %w", reservation.ID, apperror.ErrNotFound)
	}
	if !res.Status.Active() && reservation.Status.Active() {
		return fmt.Errorf("%w: cancelled reservation %d cannot be reactivated", apperror.ErrValidation, reservation.ID)
	}
	if reservation.Status.Active() &&
		r.s.slotTaken(reservation.ID, res.FieldID, reservation.Date, reservation.StartTime) {
		return fmt.Errorf("update reservation %d: %w: reservations_active_slot_uq", reservation.ID, apperror.ErrConflict)
	}
	res.Date = reservation.Date
	res.StartTime = reservation.StartTime
	res.EndTime = reservation.EndTime
	res.Status = reservation.Status
	return nil
}

func (r *reservationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reservations[id]; !ok {
		return fmt.Errorf("reservation %d: %w", id, apperror.ErrNotFound)
	}
	r.s.deleteReservation(id)
	return nil
}

func (r *reservationRepo) DeleteByUserID(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, res := range r.s.reservations {
		if res.UserID == userID {
			r.s.deleteReservation(id)
			deleted++
		}
	}
	return deleted, nil
}

// deleteReservation cascades to the reservation's payment.
func (s *store) deleteReservation(id int64) {
	delete(s.reservations, id)
	for pid, p := range s.payments {
		if p.ReservationID == id {
			delete(s.payments, pid)
		}
	}
}
