package repository

import (
	"context"
	"errors"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type reviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) repo.ReviewRepository {
	return &reviewGormRepository{db: db}
}

func (r *reviewGormRepository) FindByID(ctx context.Context, reviewID int64) (model.Review, error) {
	var rev model.Review
	err := r.db.WithContext(ctx).Where("id = ?", reviewID).First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Review{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Review{}, err
	}
	return rev, nil
}

func (r *reviewGormRepository) ListVisibleByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	var items []model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, model.ReviewStatusVisible).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Review{}, err
	}
	return items, nil
}

func (r *reviewGormRepository) Create(ctx context.Context, rev model.Review) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&rev).Error; err != nil {
		return 0, err
	}
	return rev.ID, nil
}

func (r *reviewGormRepository) UpdateStatus(ctx context.Context, reviewID int64, status model.ReviewStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", reviewID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
