package repository

import (
	"context"
	"time"

	"uniket/internal/domain/model"
)

// 監査ログ一覧の検索条件。nilのフィールドは条件なし
type AuditLogFilter struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// 管理者操作の追跡用ログ。
type AuditLogRepository interface {
	//1件保存。出金審査・レビュー非表示のトランザクション内から呼ばれる
	Create(ctx context.Context, log model.AuditLog) error

	//条件に合うログを新しい順で返す
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
