package model

import "time"

type NotificationType string

const (
	NotificationTypeNewOrder       NotificationType = "NEW_ORDER"
	NotificationTypeOrderStatus    NotificationType = "order_status"
	NotificationTypeOrderCancelled NotificationType = "ORDER_CANCELLED"
	NotificationTypeOrderRated     NotificationType = "ORDER_RATED"
	NotificationTypeFraudAlert     NotificationType = "FRAUD_ALERT"
	NotificationTypeTicket         NotificationType = "ticket"
	NotificationTypeReview         NotificationType = "review"
	NotificationTypeBid            NotificationType = "bid"
	NotificationTypeWallet         NotificationType = "wallet"
)

// 副作用として追記されるだけの行。失敗しても本処理を止めない
type Notification struct {
	ID     int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64            `gorm:"not null;index" json:"user_id"`
	Type   NotificationType `gorm:"type:varchar(50);not null;index" json:"type"`

	//1000文字で切り詰めて保存する
	Message string `gorm:"type:varchar(1000);not null" json:"message"`

	//種別ごとの付帯データ（JSON文字列）
	DataJSON string `gorm:"type:text" json:"data,omitempty"`

	Read bool   `gorm:"not null;default:false" json:"read"`
	Role string `gorm:"type:varchar(20)" json:"role,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
