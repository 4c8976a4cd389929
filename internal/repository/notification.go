package repository

import (
	"context"
	"time"

	"github.com/linskybing/formflow/internal/domain/notification"
	"gorm.io/gorm"
)

type NotificationQuery struct {
	UserID     string
	UnreadOnly bool
	Since      *time.Time
	Limit      int
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *notification.Notification) error
	ListNotifications(ctx context.Context, q NotificationQuery) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	WithTx(tx *gorm.DB) NotificationRepo
}

type DBNotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *DBNotificationRepo {
	return &DBNotificationRepo{
		db: db,
	}
}

func (r *DBNotificationRepo) CreateNotification(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *DBNotificationRepo) ListNotifications(ctx context.Context, q NotificationQuery) ([]notification.Notification, error) {
	var rows []notification.Notification
	query := r.db.WithContext(ctx).Where("user_id = ?", q.UserID)
	if q.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if q.Since != nil {
		query = query.Where("created_at > ?", *q.Since)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	err := query.Order("created_at desc").Find(&rows).Error
	return rows, err
}

// MarkRead returns gorm.ErrRecordNotFound when no notification of userID has that id.
func (r *DBNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBNotificationRepo) WithTx(tx *gorm.DB) NotificationRepo {
	if tx == nil {
		return r
	}
	return &DBNotificationRepo{
		db: tx,
	}
}
