package service

import (
	"context"
	"time"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
)

// NotificationService is the pull side of the notification sink: recipients
// list, read and delete their own records. Creation happens inside the other
// services' transactions.
type NotificationService struct {
	base
}

// List returns a page of the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, page, limit int, unreadOnly bool) (*models.NotificationListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := s.db.WithContext(ctx).Model(&models.Notification{}).Where("recipient_id = ?", userID)
	if unreadOnly {
		db = db.Where("is_read = false")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, storeErr(err)
	}

	var notifications []models.Notification
	if err := db.Preload("Sender").
		Order("created_at desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&notifications).Error; err != nil {
		return nil, storeErr(err)
	}

	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.NotificationListResult{
		Notifications: notifications,
		TotalPages:    int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage:   page,
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

// UnreadCount returns how many unread notifications the user has.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, storeErr(err)
}

// MarkRead marks one notification as read. Recipient only.
func (s *NotificationService) MarkRead(ctx context.Context, id uint, actor Actor) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, storeErr(err)
	}
	if notification.RecipientID != actor.ID {
		return nil, ErrNotAuthorized
	}

	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Model(&notification).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &notification, nil
}

// MarkAllRead marks every unread notification of the actor as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor Actor) error {
	return storeErr(s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", actor.ID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now().UTC(),
		}).Error)
}

// Delete removes one notification. Recipient only.
func (s *NotificationService) Delete(ctx context.Context, id uint, actor Actor) error {
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return storeErr(err)
	}
	if notification.RecipientID != actor.ID {
		return ErrNotAuthorized
	}
	return storeErr(s.db.WithContext(ctx).Delete(&notification).Error)
}
