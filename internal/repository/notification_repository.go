package repository

import (
	"context"

	"uniket/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) (int64, error)
	ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID int64, userID int64) error

	//各ユーザー最新keep件だけ残して古い行を消す（随時呼ばれる。スケジューラはない）
	ArchiveOld(ctx context.Context, userID int64, keep int) error
}

type AdminAlertRepository interface {
	Create(ctx context.Context, a model.AdminAlert) (int64, error)
	ListUnresolved(ctx context.Context, limit int) ([]model.AdminAlert, error)
	Resolve(ctx context.Context, alertID int64) error
}
