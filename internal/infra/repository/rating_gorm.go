package repository

import (
	"context"
	"errors"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type ratingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) repo.RatingRepository {
	return &ratingGormRepository{db: db}
}

func (r *ratingGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.OrderRating, error) {
	var rating model.OrderRating
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderRating{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderRating{}, err
	}
	return rating, nil
}

func (r *ratingGormRepository) Create(ctx context.Context, rating model.OrderRating) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&rating).Error; err != nil {
		return 0, err
	}
	return rating.ID, nil
}
