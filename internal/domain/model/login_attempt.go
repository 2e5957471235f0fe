package model

import "time"

// ログイン試行の記録。不正検知のカウンタ元データ
type LoginAttempt struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64    `gorm:"index" json:"user_id,omitempty"`
	Email     string    `gorm:"type:varchar(255);not null;index" json:"email"`
	IP        string    `gorm:"type:varchar(64);not null;index" json:"ip"`
	Success   bool      `gorm:"not null" json:"success"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
