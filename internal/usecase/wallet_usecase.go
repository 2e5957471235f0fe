package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"uniket/internal/domain/model"
	"uniket/internal/notify"
	repo "uniket/internal/repository"
)

type WalletUsecase struct {
	tx        repo.TransactionManager
	wallets   repo.WalletRepository
	walletTxs repo.WalletTransactionRepository
	sink      notify.Sink
}

func NewWalletUsecase(
	tx repo.TransactionManager,
	wallets repo.WalletRepository,
	walletTxs repo.WalletTransactionRepository,
	sink notify.Sink,
) *WalletUsecase {
	return &WalletUsecase{
		tx:        tx,
		wallets:   wallets,
		walletTxs: walletTxs,
		sink:      sink,
	}
}

type WalletOutput struct {
	Wallet       model.Wallet              `json:"wallet"`
	Transactions []model.WalletTransaction `json:"transactions"`
}

func (u *WalletUsecase) GetMyWallet(ctx context.Context, userID int64) (WalletOutput, error) {
	if userID <= 0 {
		return WalletOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	w, err := u.wallets.FindOrCreateByUserID(ctx, userID)
	if err != nil {
		return WalletOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	txs, err := u.walletTxs.ListByWalletID(ctx, w.ID, 50)
	if err != nil {
		return WalletOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return WalletOutput{Wallet: w, Transactions: txs}, nil
}

type WithdrawalInput struct {
	Amount int64
}

// 出金申請。申請時点で残高から差し引いて保留にする
func (u *WalletUsecase) RequestWithdrawal(ctx context.Context, userID int64, in WithdrawalInput) (model.WalletTransaction, error) {
	if userID <= 0 {
		return model.WalletTransaction{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Amount <= 0 {
		return model.WalletTransaction{}, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	var out model.WalletTransaction

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		w, err := r.Wallets().FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, "insufficient balance")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if w.Balance < in.Amount {
			return NewHTTPError(http.StatusBadRequest, "insufficient balance")
		}

		t := model.WalletTransaction{
			WalletID: w.ID,
			Type:     model.TransactionTypeWithdrawal,
			Amount:   in.Amount,
			Status:   model.TransactionStatusPending,
		}
		id, err := r.WalletTransactions().Create(ctx, t)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		t.ID = id

		//残高の差し引きは申請と同一トランザクション
		if err := r.Wallets().UpdateBalance(ctx, w.ID, w.Balance-in.Amount); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = t
		return nil
	})

	if err != nil {
		return model.WalletTransaction{}, err
	}
	return out, nil
}

// 管理者による出金の承認/却下。
// 却下時の残高戻しはステータス更新と同一トランザクションで行う
func (u *WalletUsecase) ReviewWithdrawal(ctx context.Context, adminID int64, txID int64, approve bool) (model.WalletTransaction, error) {
	if adminID <= 0 {
		return model.WalletTransaction{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if txID <= 0 {
		return model.WalletTransaction{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var (
		out    model.WalletTransaction
		userID int64
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		t, err := r.WalletTransactions().FindByID(ctx, txID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "withdrawal not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if t.Type != model.TransactionTypeWithdrawal {
			return NewHTTPError(http.StatusBadRequest, "not a withdrawal")
		}
		if t.Status != model.TransactionStatusPending {
			return NewHTTPError(http.StatusBadRequest, "withdrawal already reviewed")
		}

		newStatus := model.TransactionStatusRejected
		if approve {
			newStatus = model.TransactionStatusApproved
		}

		if err := r.WalletTransactions().UpdateStatus(ctx, t.ID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		wallet, err := r.Wallets().FindByID(ctx, t.WalletID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		userID = wallet.UserID

		//却下なら保留分を残高へ戻す（refund行も残す）
		if !approve {
			if err := r.Wallets().UpdateBalance(ctx, wallet.ID, wallet.Balance+t.Amount); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if _, err := r.WalletTransactions().Create(ctx, model.WalletTransaction{
				WalletID:  wallet.ID,
				Type:      model.TransactionTypeRefund,
				Amount:    t.Amount,
				Status:    model.TransactionStatusCompleted,
				Reference: fmt.Sprintf("withdrawal:%d", t.ID),
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		t.Status = newStatus
		out = t

		//監査ログ（REVIEW_WITHDRAWAL）
		beforeJSON := `{"status":"` + string(model.TransactionStatusPending) + `"}`
		afterJSON := `{"status":"` + string(newStatus) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminID,
			Action:       model.AuditActionReviewWithdrawal,
			ResourceType: model.AuditResourceWithdrawal,
			ResourceID:   t.ID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return model.WalletTransaction{}, err
	}

	status := "rejected"
	if approve {
		status = "approved"
	}
	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  userID,
		Type:    model.NotificationTypeWallet,
		Message: fmt.Sprintf("Your withdrawal of %d was %s", out.Amount, status),
		Role:    string(model.RoleVendor),
	})

	return out, nil
}
