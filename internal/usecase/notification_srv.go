package usecase

import (
	"context"
	"fmt"
	"time"

	"field-booking/internal/data/entity"
	"field-booking/internal/data/repository"
	"field-booking/internal/dto/response"
	"field-booking/pkg/mq"

	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

type NotificationService interface {
	// Notify records and publishes an event for the user. It never fails the
	// caller; problems are logged.
	Notify(ctx context.Context, userID int64, kind entity.NotificationType, message string)
	ListForUser(ctx context.Context, userID int64) ([]response.NotificationResponse, error)
}

// NotificationEvent is the JSON body published to the broker.
type NotificationEvent struct {
	ID      int64                   `json:"id"`
	UserID  int64                   `json:"user_id"`
	Type    entity.NotificationType `json:"type"`
	Message string                  `json:"message"`
	SentAt  time.Time               `json:"sent_at"`
}

type notificationService struct {
	notifications repository.NotificationRepository
	publisher     mq.Publisher
	log           *zap.Logger
}

func NewNotificationService(notifications repository.NotificationRepository, publisher mq.Publisher, log *zap.Logger) NotificationService {
	if publisher == nil {
		publisher = mq.NopPublisher{}
	}
	return &notificationService{
		notifications: notifications,
		publisher:     publisher,
		log:           log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) Notify(ctx context.Context, userID int64, kind entity.NotificationType, message string) {
	n := &entity.Notification{
		UserID:  userID,
		Message: message,
		Type:    kind,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Warn("Failed to store notification", zap.Error(err), zap.Int64("user_id", userID), zap.String("type", string(kind)))
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := NotificationEvent{
		ID:      n.ID,
		UserID:  n.UserID,
		Type:    n.Type,
		Message: n.Message,
		SentAt:  n.SentAt,
	}
	if err := s.publisher.PublishJSON(pubCtx, string(kind), event); err != nil {
		s.log.Warn("Failed to publish notification", zap.Error(err), zap.Int64("notification_id", n.ID))
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID int64) ([]response.NotificationResponse, error) {
	items, err := s.notifications.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return response.NotificationsToResponse(items), nil
}
