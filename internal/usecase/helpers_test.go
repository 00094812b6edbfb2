package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"field-booking/internal/data/repository/repotest"
	"field-booking/internal/dto/request"
	"field-booking/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	key   string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{key: key, event: v})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.key)
	}
	return keys
}

var errBrokerDown = errors.New("broker down")

func newTestService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return NewService(repotest.NewRepository(), pub, &utils.Config{}, zap.NewNop()), pub
}

func registerUser(t *testing.T, svc *Service, email string) int64 {
	t.Helper()
	resp, err := svc.Auth.Register(context.Background(), &request.RegisterRequest{
		FullName: "Ana Gomez",
		Email:    email,
		Phone:    "3001234567",
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp.ID
}

func reservationReq(userID int64, date, start, end string) *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		UserID:    userID,
		FieldID:   1,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}
