package model

import "time"

// 出品者1人につき1つの残高台帳
type Wallet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type TransactionType string

const (
	TransactionTypeFund       TransactionType = "fund"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
	TransactionStatusApproved  TransactionStatus = "APPROVED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

// 台帳の1行。withdrawalの承認/却下は残高更新と同一トランザクションで行う
type WalletTransaction struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	WalletID  int64             `gorm:"not null;index" json:"wallet_id"`
	Type      TransactionType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Amount    int64             `gorm:"not null" json:"amount"`
	Status    TransactionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Reference string            `gorm:"type:varchar(255)" json:"reference"`
	CreatedAt time.Time         `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
