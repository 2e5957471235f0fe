package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID    int64  `gorm:"not null;index" json:"vendor_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	Stock       int64  `gorm:"not null" json:"stock"`
	IsActive    bool   `gorm:"not null;default:false" json:"is_active"`
	ImagePath   string `gorm:"type:varchar(255)" json:"image_path"`

	//入札（bidding window）
	EnableBidding bool       `gorm:"not null;default:false" json:"enable_bidding"`
	StartingBid   int64      `json:"starting_bid"`
	BidEndDate    *time.Time `json:"bid_end_date,omitempty"`

	//チケット商品（イベント入場券）
	IsTicket      bool       `gorm:"not null;default:false" json:"is_ticket"`
	EventName     string     `gorm:"type:varchar(255)" json:"event_name,omitempty"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	EventLocation string     `gorm:"type:varchar(255)" json:"event_location,omitempty"`
	TicketType    string     `gorm:"type:varchar(50)" json:"ticket_type,omitempty"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// チケット商品として販売できる状態か（イベント情報が揃っているか）
func (p *Product) HasEventDetails() bool {
	return p.IsTicket && p.EventName != "" && p.EventDate != nil
}
