package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/domain"
	"github.com/Krishnakantdwivedi2006/saikisan-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return domain.NewStorageFailure(err)
	}

	query := `INSERT INTO notifications (user_id, title, message, is_read, attributes, created_on)
	          VALUES ($1, $2, $3, FALSE, $4, NOW()) RETURNING id, created_on`
	if err := r.db.QueryRowContext(ctx, query, n.UserID, n.Title, n.Message, attrs).Scan(&n.ID, &n.CreatedOn); err != nil {
		return domain.NewStorageFailure(err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, domain.NewStorageFailure(err)
	}

	query := `SELECT id, user_id, title, message, is_read, attributes, created_on
	            FROM notifications WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, domain.NewStorageFailure(err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &attrs, &n.CreatedOn); err != nil {
			return nil, 0, domain.NewStorageFailure(err)
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, domain.NewStorageFailure(err)
			}
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.NewStorageFailure(err)
	}
	return notifications, count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return domain.NewStorageFailure(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound(fmt.Sprintf("notification %d", notificationID))
	}
	return nil
}
