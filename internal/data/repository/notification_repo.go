package repository

import (
	"context"
	"fmt"

	"field-booking/internal/data/entity"
	"field-booking/pkg/database"

	"go.uber.org/zap"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Notification, error)
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, type)
		VALUES ($1, $2, $3)
		RETURNING id, sent_at
	`

	err := r.db.QueryRow(ctx, query, n.UserID, n.Message, n.Type).Scan(&n.ID, &n.SentAt)
	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.Int64("user_id", n.UserID),
			zap.String("type", string(n.Type)),
		)
		return fmt.Errorf("create notification for user %d: %w", n.UserID, translateError(err))
	}

	return nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, message, type, sent_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY sent_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find notifications", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find notifications of user %d: %w", userID, translateError(err))
	}
	defer rows.Close()

	notifications := []*entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.SentAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", translateError(err))
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", translateError(err))
	}

	return notifications, nil
}
