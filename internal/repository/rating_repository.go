package repository

import (
	"context"

	"uniket/internal/domain/model"
)

type RatingRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (model.OrderRating, error)
	Create(ctx context.Context, r model.OrderRating) (int64, error)
}
