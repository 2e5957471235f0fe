package repository

import (
	"context"
	"time"

	"uniket/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page       int
	Limit      int
	Status     string
	CustomerID *int64
	VendorID   *int64
	From       *time.Time
	To         *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, eta *time.Time) error

	//直近N時間の注文件数（不正検知カウンタ）
	CountByCustomerSince(ctx context.Context, customerID int64, since time.Time) (int64, error)

	//金額集計（異常検知の特徴量）
	AmountStatsByCustomer(ctx context.Context, customerID int64) (avg float64, max int64, err error)

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
