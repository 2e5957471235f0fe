package model

import "time"

// 注文と1:1。2回目の評価は拒否する
type OrderRating struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64 `gorm:"not null;uniqueIndex" json:"order_id"`
	CustomerID int64 `gorm:"not null;index" json:"customer_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	//カテゴリ別サブスコア（未指定ならRatingで埋める）
	DeliveryRating      int `gorm:"not null" json:"delivery_rating"`
	QualityRating       int `gorm:"not null" json:"quality_rating"`
	CommunicationRating int `gorm:"not null" json:"communication_rating"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
