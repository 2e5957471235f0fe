package model

import "time"

type TicketStatus string

const (
	TicketStatusValid   TicketStatus = "VALID"
	TicketStatusUsed    TicketStatus = "USED"
	TicketStatusExpired TicketStatus = "EXPIRED"
	TicketStatusClosed  TicketStatus = "CLOSED"
)

// チケット商品の入場1枚分。quantity分だけ独立した行を発行する
type Ticket struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//表示用の識別子。セキュリティトークンではない
	TicketNumber string `gorm:"type:varchar(64);not null;uniqueIndex" json:"ticket_number"`

	//スキャン照合用の不透明トークン。完全一致でのみ照合する（復号はしない）
	QRCode string `gorm:"type:varchar(255);not null;index" json:"qr_code"`

	ProductID int64 `gorm:"not null;index" json:"product_id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	UserID    int64 `gorm:"not null;index" json:"user_id"`

	Status TicketStatus `gorm:"type:varchar(20);not null" json:"status"`
	UsedAt *time.Time   `json:"used_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
