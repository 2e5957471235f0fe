package repository

import (
	"context"
	"errors"
	"time"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type bidGormRepository struct {
	db *gorm.DB
}

func NewBidGormRepository(db *gorm.DB) repo.BidRepository {
	return &bidGormRepository{db: db}
}

func (r *bidGormRepository) FindByID(ctx context.Context, bidID int64) (model.Bid, error) {
	var b model.Bid
	err := r.db.WithContext(ctx).Where("id = ?", bidID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bid{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Bid{}, err
	}
	return b, nil
}

func (r *bidGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Bid, error) {
	var items []model.Bid
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("amount desc").
		Find(&items).Error
	if err != nil {
		return []model.Bid{}, err
	}
	return items, nil
}

func (r *bidGormRepository) Create(ctx context.Context, b model.Bid) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (r *bidGormRepository) UpdateStatus(ctx context.Context, bidID int64, status model.BidStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("id = ?", bidID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *bidGormRepository) CountByUserSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Bid{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *bidGormRepository) AmountStatsByUser(ctx context.Context, userID int64) (float64, int64, error) {
	var row struct {
		Avg float64
		Max int64
	}
	err := r.db.WithContext(ctx).Model(&model.Bid{}).
		Select("COALESCE(AVG(amount),0) AS avg, COALESCE(MAX(amount),0) AS max").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Max, nil
}
