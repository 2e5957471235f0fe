package repository

import (
	"context"
	"time"

	"uniket/internal/domain/model"
)

type LoginAttemptRepository interface {
	Create(ctx context.Context, a model.LoginAttempt) error

	//直近の失敗回数（不正検知カウンタ）
	CountFailedSince(ctx context.Context, userID int64, since time.Time) (int64, error)

	//同一IPからの別アカウント数（不正検知カウンタ）
	CountDistinctUsersByIPSince(ctx context.Context, ip string, since time.Time) (int64, error)

	//成功率の分母分子（異常検知の特徴量）
	SuccessStats(ctx context.Context, userID int64) (total int64, success int64, err error)
}
