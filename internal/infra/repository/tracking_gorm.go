package repository

import (
	"context"
	"errors"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type trackingGormRepository struct {
	db *gorm.DB
}

func NewTrackingGormRepository(db *gorm.DB) repo.TrackingRepository {
	return &trackingGormRepository{db: db}
}

func (r *trackingGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.OrderTracking, error) {
	var t model.OrderTracking
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderTracking{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderTracking{}, err
	}
	return t, nil
}

func (r *trackingGormRepository) Create(ctx context.Context, t model.OrderTracking) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (r *trackingGormRepository) Update(ctx context.Context, t model.OrderTracking) error {
	res := r.db.WithContext(ctx).Save(&t)
	if res.Error != nil {
		return res.Error
	}
	return nil
}
