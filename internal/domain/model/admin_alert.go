package model

import "time"

type AlertSeverity string

const (
	AlertSeverityLow    AlertSeverity = "LOW"
	AlertSeverityMedium AlertSeverity = "MEDIUM"
	AlertSeverityHigh   AlertSeverity = "HIGH"
)

// FRAUD_ALERT通知と並行して書かれる管理者向けの行
type AdminAlert struct {
	ID       int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Type     string        `gorm:"type:varchar(50);not null;index" json:"type"`
	Severity AlertSeverity `gorm:"type:varchar(20);not null" json:"severity"`
	Message  string        `gorm:"type:varchar(1000);not null" json:"message"`

	//アラートの対象ユーザー
	UserID int64 `gorm:"index" json:"user_id"`

	Resolved  bool      `gorm:"not null;default:false" json:"resolved"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
