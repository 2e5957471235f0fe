package repository

import (
	"context"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type notificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) repo.NotificationRepository {
	return &notificationGormRepository{db: db}
}

func (r *notificationGormRepository) Create(ctx context.Context, n model.Notification) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
		return 0, err
	}
	return n.ID, nil
}

func (r *notificationGormRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var items []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Notification{}, err
	}
	return items, nil
}

func (r *notificationGormRepository) MarkRead(ctx context.Context, notificationID int64, userID int64) error {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 各ユーザー最新keep件を残して古い行を消す
func (r *notificationGormRepository) ArchiveOld(ctx context.Context, userID int64, keep int) error {
	if keep <= 0 {
		keep = 100
	}

	sub := r.db.WithContext(ctx).Model(&model.Notification{}).
		Select("id").
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(keep)

	return r.db.WithContext(ctx).
		Where("user_id = ? AND id NOT IN (?)", userID, sub).
		Delete(&model.Notification{}).Error
}

type adminAlertGormRepository struct {
	db *gorm.DB
}

func NewAdminAlertGormRepository(db *gorm.DB) repo.AdminAlertRepository {
	return &adminAlertGormRepository{db: db}
}

func (r *adminAlertGormRepository) Create(ctx context.Context, a model.AdminAlert) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (r *adminAlertGormRepository) ListUnresolved(ctx context.Context, limit int) ([]model.AdminAlert, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var items []model.AdminAlert
	err := r.db.WithContext(ctx).
		Where("resolved = ?", false).
		Order("id desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.AdminAlert{}, err
	}
	return items, nil
}

func (r *adminAlertGormRepository) Resolve(ctx context.Context, alertID int64) error {
	res := r.db.WithContext(ctx).Model(&model.AdminAlert{}).
		Where("id = ?", alertID).
		Update("resolved", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
