package notification

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// notificationRepository implements domain.NotificationRepository using GORM.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository backed by the
// given GORM database.
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts a new notification.
func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a notification by its primary key.
func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &n, nil
}

// ListByUser returns the user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, page domain.PageRequest) (*domain.PageResult[domain.Notification], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Notification{}).
			Where("user_id = ?", userID)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var items []domain.Notification
	if err := query().
		Order("created_at DESC, id DESC").
		Scopes(pkg.Paginate(page)).
		Find(&items).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(items, total, page), nil
}

// MarkRead stamps the notification as read. Already-read notifications keep
// their original timestamp.
func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", time.Now())
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	return nil
}

// Delete removes a notification by ID.
func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Notification{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
