package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"uniket/internal/config"
	"uniket/internal/domain/model"
	"uniket/internal/fraud"
	"uniket/internal/notify"
	repo "uniket/internal/repository"
)

// しきい値比較とルール評価だけの「不正検知」。統計モデルは存在しない。
// 検知したら管理者（cfg.AdminRecipientID）へFRAUD_ALERT通知を送る
type FraudUsecase struct {
	cfg      config.Config
	orders   repo.OrderRepository
	bids     repo.BidRepository
	attempts repo.LoginAttemptRepository
	users    repo.UserRepository
	sink     notify.Sink
}

func NewFraudUsecase(
	cfg config.Config,
	orders repo.OrderRepository,
	bids repo.BidRepository,
	attempts repo.LoginAttemptRepository,
	users repo.UserRepository,
	sink notify.Sink,
) *FraudUsecase {
	return &FraudUsecase{
		cfg:      cfg,
		orders:   orders,
		bids:     bids,
		attempts: attempts,
		users:    users,
		sink:     sink,
	}
}

// 24時間でのログイン失敗回数がしきい値以上ならアラート
func (u *FraudUsecase) CheckSuspiciousLogins(ctx context.Context, userID int64) bool {
	since := time.Now().Add(-24 * time.Hour)
	n, err := u.attempts.CountFailedSince(ctx, userID, since)
	if err != nil {
		return false
	}
	if n < u.cfg.MaxFailedLoginsPerDay {
		return false
	}

	u.alert(ctx, "SUSPICIOUS_LOGIN", userID,
		fmt.Sprintf("User %d has %d failed logins in the last 24h", userID, n), n)
	return true
}

// 1時間での注文数がしきい値以上ならアラート
func (u *FraudUsecase) CheckSuspiciousOrders(ctx context.Context, userID int64) bool {
	since := time.Now().Add(-1 * time.Hour)
	n, err := u.orders.CountByCustomerSince(ctx, userID, since)
	if err != nil {
		return false
	}
	if n < u.cfg.MaxOrdersPerHour {
		return false
	}

	u.alert(ctx, "SUSPICIOUS_ORDERS", userID,
		fmt.Sprintf("User %d placed %d orders in the last hour", userID, n), n)
	return true
}

// 1時間での入札数がしきい値以上ならアラート
func (u *FraudUsecase) CheckSuspiciousBidding(ctx context.Context, userID int64) bool {
	since := time.Now().Add(-1 * time.Hour)
	n, err := u.bids.CountByUserSince(ctx, userID, since)
	if err != nil {
		return false
	}
	if n < u.cfg.MaxBidsPerHour {
		return false
	}

	u.alert(ctx, "SUSPICIOUS_BIDDING", userID,
		fmt.Sprintf("User %d placed %d bids in the last hour", userID, n), n)
	return true
}

// 同一IPからの別アカウント数がしきい値以上ならアラート
func (u *FraudUsecase) CheckMultipleAccounts(ctx context.Context, ip string) bool {
	since := time.Now().Add(-24 * time.Hour)
	n, err := u.attempts.CountDistinctUsersByIPSince(ctx, ip, since)
	if err != nil {
		return false
	}
	if n < u.cfg.MaxAccountsPerIP {
		return false
	}

	u.alert(ctx, "MULTIPLE_ACCOUNTS", 0,
		fmt.Sprintf("IP %s used by %d accounts in the last 24h", ip, n), n)
	return true
}

type AnomalyReport struct {
	UserID    int64           `json:"user_id"`
	Features  fraud.Features  `json:"features"`
	Anomalies []fraud.Anomaly `json:"anomalies"`
	Score     int             `json:"score"`
}

// ユーザー単位の集計特徴量を組んでルールエンジンにかける
func (u *FraudUsecase) AnalyzeUser(ctx context.Context, userID int64) (AnomalyReport, error) {
	if userID <= 0 {
		return AnomalyReport{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return AnomalyReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return AnomalyReport{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	avgOrder, maxOrder, err := u.orders.AmountStatsByCustomer(ctx, userID)
	if err != nil {
		return AnomalyReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	avgBid, maxBid, err := u.bids.AmountStatsByUser(ctx, userID)
	if err != nil {
		return AnomalyReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	total, success, err := u.attempts.SuccessStats(ctx, userID)
	if err != nil {
		return AnomalyReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	successRate := 1.0
	if total > 0 {
		successRate = float64(success) / float64(total)
	}

	hourAgo := time.Now().Add(-1 * time.Hour)
	ordersLastHour, err := u.orders.CountByCustomerSince(ctx, userID, hourAgo)
	if err != nil {
		return AnomalyReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	bidsLastHour, err := u.bids.CountByUserSince(ctx, userID, hourAgo)
	if err != nil {
		return AnomalyReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	features := fraud.Features{
		AccountAgeDays:   time.Since(user.CreatedAt).Hours() / 24,
		AvgOrderAmount:   avgOrder,
		MaxOrderAmount:   maxOrder,
		AvgBidAmount:     avgBid,
		MaxBidAmount:     maxBid,
		LoginAttempts:    total,
		LoginSuccessRate: successRate,
		OrdersLastHour:   ordersLastHour,
		BidsLastHour:     bidsLastHour,
	}

	th := fraud.DefaultThresholds()
	th.MaxFailedLogins = u.cfg.MaxFailedLoginsPerDay
	th.MaxOrdersPerHour = u.cfg.MaxOrdersPerHour
	th.MaxBidsPerHour = u.cfg.MaxBidsPerHour
	th.MaxAccountsPerIP = u.cfg.MaxAccountsPerIP

	anomalies := fraud.Evaluate(features, th)
	score := fraud.Score(anomalies)

	//何か出たら管理者へ通知（ベストエフォート）
	if len(anomalies) > 0 {
		u.sink.BestEffortNotify(ctx, notify.Input{
			UserID:    u.cfg.AdminRecipientID,
			Type:      model.NotificationTypeFraudAlert,
			Message:   fmt.Sprintf("Anomaly score %d for user %d (%d rules hit)", score, userID, len(anomalies)),
			AlertType: "ANOMALY_SCORE",
			Data: notify.FraudAlertData{
				AlertType: "ANOMALY_SCORE",
				UserID:    userID,
				Score:     score,
			},
		})
	}

	return AnomalyReport{
		UserID:    userID,
		Features:  features,
		Anomalies: anomalies,
		Score:     score,
	}, nil
}

func (u *FraudUsecase) alert(ctx context.Context, alertType string, userID int64, msg string, count int64) {
	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:    u.cfg.AdminRecipientID,
		Type:      model.NotificationTypeFraudAlert,
		Message:   msg,
		AlertType: alertType,
		Data: notify.FraudAlertData{
			AlertType: alertType,
			UserID:    userID,
			Count:     count,
		},
	})
}
