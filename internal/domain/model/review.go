package model

import "time"

type ReviewStatus string

const (
	ReviewStatusVisible ReviewStatus = "VISIBLE"
	ReviewStatusHidden  ReviewStatus = "HIDDEN"
)

// 商品レビュー。管理者がHIDDENにできる（モデレーション）
type Review struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64        `gorm:"not null;index" json:"product_id"`
	UserID    int64        `gorm:"not null;index" json:"user_id"`
	Rating    int          `gorm:"not null" json:"rating"`
	Comment   string       `gorm:"type:text" json:"comment"`
	Status    ReviewStatus `gorm:"type:varchar(20);not null;default:'VISIBLE'" json:"status"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
