package repository

import (
	"context"

	"uniket/internal/domain/model"
)

// 配送トラッキングの永続化。注文と1:1
type TrackingRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (model.OrderTracking, error)
	Create(ctx context.Context, t model.OrderTracking) (int64, error)
	Update(ctx context.Context, t model.OrderTracking) error
}
