package repository

import (
	"context"
	"time"

	"uniket/internal/domain/model"
)

type BidRepository interface {
	FindByID(ctx context.Context, bidID int64) (model.Bid, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.Bid, error)
	Create(ctx context.Context, b model.Bid) (int64, error)
	UpdateStatus(ctx context.Context, bidID int64, status model.BidStatus) error

	//直近N時間の入札件数（不正検知カウンタ）
	CountByUserSince(ctx context.Context, userID int64, since time.Time) (int64, error)

	//金額集計（異常検知の特徴量）
	AmountStatsByUser(ctx context.Context, userID int64) (avg float64, max int64, err error)
}
