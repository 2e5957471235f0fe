package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 終端ステータスか（delivered / cancelled からは遷移しない）
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "DELIVERY"
	DeliveryMethodPickup   DeliveryMethod = "PICKUP"
)

// 注文は商品1点モデル（items[]を受けても先頭だけ保存する）
type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64       `gorm:"not null;index" json:"customer_id"`
	ProductID  int64       `gorm:"not null;index" json:"product_id"`
	VendorID   int64       `gorm:"not null;index" json:"vendor_id"`
	Quantity   int64       `gorm:"not null" json:"quantity"`
	Total      int64       `gorm:"not null" json:"total"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	DeliveryMethod DeliveryMethod `gorm:"type:varchar(20);not null" json:"delivery_method"`
	PickupPointID  *int64         `json:"pickup_point_id,omitempty"`

	PaymentMethod string `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentRef    string `gorm:"type:varchar(255)" json:"payment_ref"`

	//配送先（注文時スナップショット）
	ShippingName  string `gorm:"type:varchar(255);not null" json:"shipping_name"`
	ShippingPhone string `gorm:"type:varchar(50);not null" json:"shipping_phone"`
	ShippingEmail string `gorm:"type:varchar(255);not null" json:"shipping_email"`

	//画面に見せる注文参照（DB主キーとは別物）
	TrackingID string `gorm:"type:varchar(20);not null;uniqueIndex" json:"tracking_id"`

	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
