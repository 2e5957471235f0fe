package repository

import (
	"context"
	"errors"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type pickupPointGormRepository struct {
	db *gorm.DB
}

func NewPickupPointGormRepository(db *gorm.DB) repo.PickupPointRepository {
	return &pickupPointGormRepository{db: db}
}

func (r *pickupPointGormRepository) FindByID(ctx context.Context, id int64) (model.PickupPoint, error) {
	var p model.PickupPoint
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PickupPoint{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PickupPoint{}, err
	}
	return p, nil
}

func (r *pickupPointGormRepository) ListActive(ctx context.Context) ([]model.PickupPoint, error) {
	var items []model.PickupPoint
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.PickupPoint{}, err
	}
	return items, nil
}
