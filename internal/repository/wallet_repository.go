package repository

import (
	"context"

	"uniket/internal/domain/model"
)

type WalletRepository interface {
	FindByID(ctx context.Context, walletID int64) (model.Wallet, error)
	FindByUserID(ctx context.Context, userID int64) (model.Wallet, error)

	//なければ残高0で作る
	FindOrCreateByUserID(ctx context.Context, userID int64) (model.Wallet, error)

	UpdateBalance(ctx context.Context, walletID int64, newBalance int64) error
}

type WalletTransactionRepository interface {
	FindByID(ctx context.Context, txID int64) (model.WalletTransaction, error)
	ListByWalletID(ctx context.Context, walletID int64, limit int) ([]model.WalletTransaction, error)
	Create(ctx context.Context, t model.WalletTransaction) (int64, error)
	UpdateStatus(ctx context.Context, txID int64, status model.TransactionStatus) error
}
