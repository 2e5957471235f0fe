package repository

import (
	"context"

	"uniket/internal/domain/model"
)

type ReviewRepository interface {
	FindByID(ctx context.Context, reviewID int64) (model.Review, error)
	ListVisibleByProductID(ctx context.Context, productID int64) ([]model.Review, error)
	Create(ctx context.Context, r model.Review) (int64, error)
	UpdateStatus(ctx context.Context, reviewID int64, status model.ReviewStatus) error
}
