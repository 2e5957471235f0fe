package model

import (
	"encoding/json"
	"time"
)

type TrackingStatus string

const (
	TrackingStatusInTransit TrackingStatus = "in_transit"
	TrackingStatusDelivered TrackingStatus = "delivered"
)

// 配送履歴の1件分。HistoryJSONにJSON配列で積む（追記のみ）
type TrackingEvent struct {
	Status      TrackingStatus `json:"status"`
	Location    string         `json:"location"`
	Timestamp   time.Time      `json:"timestamp"`
	Description string         `json:"description"`
}

// 注文と1:1。最初にshippedへ遷移したときに遅延生成する
type OrderTracking struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingID string `gorm:"type:varchar(20);not null;uniqueIndex" json:"tracking_id"`
	OrderID    int64  `gorm:"not null;uniqueIndex" json:"order_id"`

	Status          TrackingStatus `gorm:"type:varchar(20);not null" json:"status"`
	CurrentLocation string         `gorm:"type:varchar(255)" json:"current_location"`
	Carrier         string         `gorm:"type:varchar(100)" json:"carrier"`

	EstimatedDelivery time.Time `gorm:"not null" json:"estimated_delivery"`
	LastUpdate        time.Time `gorm:"not null" json:"last_update"`
	NextUpdate        time.Time `gorm:"not null" json:"next_update"`

	HistoryJSON string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (t *OrderTracking) History() []TrackingEvent {
	if t.HistoryJSON == "" {
		return []TrackingEvent{}
	}
	var events []TrackingEvent
	if err := json.Unmarshal([]byte(t.HistoryJSON), &events); err != nil {
		return []TrackingEvent{}
	}
	return events
}

// 履歴は追記のみ。壊れたJSONは空扱いで積み直す
func (t *OrderTracking) AppendHistory(ev TrackingEvent) {
	events := append(t.History(), ev)
	b, err := json.Marshal(events)
	if err != nil {
		return
	}
	t.HistoryJSON = string(b)
}
