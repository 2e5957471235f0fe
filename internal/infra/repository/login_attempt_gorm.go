package repository

import (
	"context"
	"time"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type loginAttemptGormRepository struct {
	db *gorm.DB
}

func NewLoginAttemptGormRepository(db *gorm.DB) repo.LoginAttemptRepository {
	return &loginAttemptGormRepository{db: db}
}

func (r *loginAttemptGormRepository) Create(ctx context.Context, a model.LoginAttempt) error {
	return r.db.WithContext(ctx).Create(&a).Error
}

func (r *loginAttemptGormRepository) CountFailedSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LoginAttempt{}).
		Where("user_id = ? AND success = ? AND created_at >= ?", userID, false, since).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *loginAttemptGormRepository) CountDistinctUsersByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LoginAttempt{}).
		Where("ip = ? AND user_id IS NOT NULL AND created_at >= ?", ip, since).
		Distinct("user_id").
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *loginAttemptGormRepository) SuccessStats(ctx context.Context, userID int64) (int64, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.LoginAttempt{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	var success int64
	err = r.db.WithContext(ctx).Model(&model.LoginAttempt{}).
		Where("user_id = ? AND success = ?", userID, true).
		Count(&success).Error
	if err != nil {
		return 0, 0, err
	}

	return total, success, nil
}
