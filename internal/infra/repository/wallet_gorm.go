package repository

import (
	"context"
	"errors"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type walletGormRepository struct {
	db *gorm.DB
}

func NewWalletGormRepository(db *gorm.DB) repo.WalletRepository {
	return &walletGormRepository{db: db}
}

func (r *walletGormRepository) FindByID(ctx context.Context, walletID int64) (model.Wallet, error) {
	var w model.Wallet
	err := r.db.WithContext(ctx).Where("id = ?", walletID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Wallet{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Wallet{}, err
	}
	return w, nil
}

func (r *walletGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Wallet, error) {
	var w model.Wallet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Wallet{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Wallet{}, err
	}
	return w, nil
}

// なければ残高0で作る
func (r *walletGormRepository) FindOrCreateByUserID(ctx context.Context, userID int64) (model.Wallet, error) {
	w, err := r.FindByUserID(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Wallet{}, err
	}

	w = model.Wallet{UserID: userID, Balance: 0}
	if err := r.db.WithContext(ctx).Create(&w).Error; err != nil {
		return model.Wallet{}, err
	}
	return w, nil
}

func (r *walletGormRepository) UpdateBalance(ctx context.Context, walletID int64, newBalance int64) error {
	res := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("id = ?", walletID).
		Update("balance", newBalance)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type walletTransactionGormRepository struct {
	db *gorm.DB
}

func NewWalletTransactionGormRepository(db *gorm.DB) repo.WalletTransactionRepository {
	return &walletTransactionGormRepository{db: db}
}

func (r *walletTransactionGormRepository) FindByID(ctx context.Context, txID int64) (model.WalletTransaction, error) {
	var t model.WalletTransaction
	err := r.db.WithContext(ctx).Where("id = ?", txID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.WalletTransaction{}, repo.ErrNotFound
	}
	if err != nil {
		return model.WalletTransaction{}, err
	}
	return t, nil
}

func (r *walletTransactionGormRepository) ListByWalletID(ctx context.Context, walletID int64, limit int) ([]model.WalletTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var items []model.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("id desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.WalletTransaction{}, err
	}
	return items, nil
}

func (r *walletTransactionGormRepository) Create(ctx context.Context, t model.WalletTransaction) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (r *walletTransactionGormRepository) UpdateStatus(ctx context.Context, txID int64, status model.TransactionStatus) error {
	res := r.db.WithContext(ctx).Model(&model.WalletTransaction{}).
		Where("id = ?", txID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
