package repository

import (
	"context"

	"uniket/internal/domain/model"
)

type PickupPointRepository interface {
	FindByID(ctx context.Context, id int64) (model.PickupPoint, error)
	ListActive(ctx context.Context) ([]model.PickupPoint, error)
}
