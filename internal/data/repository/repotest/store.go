// Package repotest provides an in-memory Repository for service and handler
// tests. It keeps the same constraints as the Postgres schema: one active
// reservation per slot, one payment per reservation, unique user emails and
// foreign keys between the tables.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"field-booking/internal/data/entity"
	"field-booking/internal/data/repository"
	"field-booking/pkg/apperror"
)

type store struct {
	mu sync.Mutex

	nextID map[string]int64

	users         map[int64]*entity.User
	fields        map[int64]*entity.Field
	reservations  map[int64]*entity.Reservation
	payments      map[int64]*entity.Payment
	notifications map[int64]*entity.Notification

	now func() time.Time
}

// NewRepository returns an empty store with the two default fields seeded.
func NewRepository() *repository.Repository {
	s := newStore()
	s.fields[s.id("fields")] = &entity.Field{ID: 1, Name: "Cancha 1", Location: "Parque Norte", PricePerHour: 45000}
	s.fields[s.id("fields")] = &entity.Field{ID: 2, Name: "Cancha 2", Location: "Parque Sur", PricePerHour: 50000}
	return s.repository()
}

// NewEmptyRepository returns a store with no rows at all.
func NewEmptyRepository() *repository.Repository {
	return newStore().repository()
}

func newStore() *store {
	return &store{
		nextID:        map[string]int64{},
		users:         map[int64]*entity.User{},
		fields:        map[int64]*entity.Field{},
		reservations:  map[int64]*entity.Reservation{},
		payments:      map[int64]*entity.Payment{},
		notifications: map[int64]*entity.Notification{},
		now:           time.Now,
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		User:         &userRepo{s},
		Field:        &fieldRepo{s},
		Reservation:  &reservationRepo{s},
		Payment:      &paymentRepo{s},
		Notification: &notificationRepo{s},
	}
}

func (s *store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func (s *store) slotTaken(exceptID, fieldID int64, date, start string) bool {
	for _, r := range s.reservations {
		if r.ID == exceptID || !r.Status.Active() {
			continue
		}
		if r.FieldID == fieldID && r.Date == date && r.StartTime == start {
			return true
		}
	}
	return false
}

type userRepo struct{ s *store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("create user %s: %w: users_email_key", user.Email, apperror.ErrConflict)
		}
	}

	user.ID = r.s.id("users")
	user.CreatedAt = r.s.now()
	u := *user
	r.s.users[u.ID] = &u
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fieldRepo struct{ s *store }

func (r *fieldRepo) Create(_ context.Context, field *entity.Field) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	field.ID = r.s.id("fields")
	f := *field
	r.s.fields[f.ID] = &f
	return nil
}

func (r *fieldRepo) FindByID(_ context.Context, id int64) (*entity.Field, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.fields[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fieldRepo) FindAll(_ context.Context) ([]*entity.Field, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	fields := []*entity.Field{}
	for _, f := range r.s.fields {
		cp := *f
		fields = append(fields, &cp)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].ID < fields[j].ID })
	return fields, nil
}

func (r *fieldRepo) Update(_ context.Context, field *entity.Field) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.fields[field.ID]; !ok {
		return fmt.Errorf("field %d: %w", field.ID, apperror.ErrNotFound)
	}
	f := *field
	r.s.fields[f.ID] = &f
	return nil
}

func (r *fieldRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.fields[id]; !ok {
		return fmt.Errorf("field %d: %w", id, apperror.ErrNotFound)
	}
	for _, res := range r.s.reservations {
		if res.FieldID == id {
			return fmt.Errorf("delete field %d: %w: reservations_field_id_fkey", id, apperror.ErrConflict)
		}
	}
	delete(r.s.fields, id)
	return nil
}
