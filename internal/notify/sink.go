package notify

import (
	"context"
	"encoding/json"
	"time"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"github.com/labstack/gommon/log"
)

// 通知はベストエフォート。ここでの失敗が本処理を落とすことは絶対にない。
// その契約をtry/catch散らしではなくinterfaceで明示する
type Sink interface {
	BestEffortNotify(ctx context.Context, in Input)
}

type Input struct {
	UserID  int64
	Type    model.NotificationType
	Message string
	Role    string

	//種別ごとの付帯データ（JSONで保存される）
	Data interface{}

	//Type=FRAUD_ALERTのときのアラート種別（severity決定に使う）
	AlertType string
}

// 通知種別ごとの付帯データ。wire上のJSON形は元のblobと同じ
type OrderStatusData struct {
	OrderID               int64      `json:"orderId"`
	Status                string     `json:"status"`
	TrackingID            string     `json:"trackingId"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
}

type OrderCancelledData struct {
	OrderID    int64  `json:"orderId"`
	TrackingID string `json:"trackingId"`
	Reason     string `json:"reason,omitempty"`
}

type TicketBatchData struct {
	OrderID   int64    `json:"orderId"`
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	Numbers   []string `json:"ticketNumbers"`
}

type FraudAlertData struct {
	AlertType string `json:"alertType"`
	UserID    int64  `json:"userId"`
	Count     int64  `json:"count,omitempty"`
	Score     int    `json:"score,omitempty"`
	Response  string `json:"response,omitempty"`
}

const (
	maxMessageLen  = 1000
	maxResponseLen = 500

	//各ユーザー直近100件だけ残す
	archiveKeep = 100
)

// FRAUD_ALERTのアラート種別→severityの固定表
var alertSeverity = map[string]model.AlertSeverity{
	"SUSPICIOUS_LOGIN":   model.AlertSeverityHigh,
	"SUSPICIOUS_ORDERS":  model.AlertSeverityMedium,
	"SUSPICIOUS_BIDDING": model.AlertSeverityMedium,
	"MULTIPLE_ACCOUNTS":  model.AlertSeverityHigh,
	"SUSPICIOUS_PRODUCT": model.AlertSeverityMedium,
	"FLAGGED_PRODUCT":    model.AlertSeverityLow,
}

func SeverityFor(alertType string) model.AlertSeverity {
	if s, ok := alertSeverity[alertType]; ok {
		return s
	}
	return model.AlertSeverityMedium
}

type DBSink struct {
	notifications repo.NotificationRepository
	adminAlerts   repo.AdminAlertRepository
	logger        *log.Logger
}

func NewDBSink(
	notifications repo.NotificationRepository,
	adminAlerts repo.AdminAlertRepository,
	logger *log.Logger,
) *DBSink {
	return &DBSink{
		notifications: notifications,
		adminAlerts:   adminAlerts,
		logger:        logger,
	}
}

// 失敗はログに残すだけで呼び元には返さない
func (s *DBSink) BestEffortNotify(ctx context.Context, in Input) {
	msg := in.Message
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen]
	}

	n := model.Notification{
		UserID:   in.UserID,
		Type:     in.Type,
		Message:  msg,
		DataJSON: s.encodeData(in.Data),
		Role:     in.Role,
	}

	if _, err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Errorf("notify: create notification failed: %v", err)
		return
	}

	//FRAUD_ALERTは管理者アラート行も並行して書く
	if in.Type == model.NotificationTypeFraudAlert {
		alert := model.AdminAlert{
			Type:     in.AlertType,
			Severity: SeverityFor(in.AlertType),
			Message:  msg,
			UserID:   in.UserID,
		}
		if _, err := s.adminAlerts.Create(ctx, alert); err != nil {
			s.logger.Errorf("notify: create admin alert failed: %v", err)
		}
	}

	//古い通知の間引きはこのタイミングで随時やる（スケジューラはない）
	if err := s.notifications.ArchiveOld(ctx, in.UserID, archiveKeep); err != nil {
		s.logger.Errorf("notify: archive failed: %v", err)
	}
}

// dataをJSON文字列にする。responseフィールドは500文字で切り詰め、
// シリアライズに失敗したら最小のフォールバックに差し替える
func (s *DBSink) encodeData(data interface{}) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Warnf("notify: marshal data failed: %v", err)
		return `{"error":"notification data unavailable"}`
	}

	return string(truncateResponseField(raw))
}

func truncateResponseField(raw []byte) []byte {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}

	resp, ok := m["response"].(string)
	if !ok || len(resp) <= maxResponseLen {
		return raw
	}

	m["response"] = resp[:maxResponseLen]
	out, err := json.Marshal(m)
	if err != nil {
		return raw
	}
	return out
}
