package repository

import (
	"context"

	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders       repo.OrderRepository
	tracking     repo.TrackingRepository
	ratings      repo.RatingRepository
	tickets      repo.TicketRepository
	products     repo.ProductRepository
	pickupPoints repo.PickupPointRepository
	wallets      repo.WalletRepository
	walletTxs    repo.WalletTransactionRepository
	bids         repo.BidRepository
	auditLogs    repo.AuditLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                         { return r.orders }
func (r *txReposGorm) Tracking() repo.TrackingRepository                    { return r.tracking }
func (r *txReposGorm) Ratings() repo.RatingRepository                       { return r.ratings }
func (r *txReposGorm) Tickets() repo.TicketRepository                       { return r.tickets }
func (r *txReposGorm) Products() repo.ProductRepository                     { return r.products }
func (r *txReposGorm) PickupPoints() repo.PickupPointRepository             { return r.pickupPoints }
func (r *txReposGorm) Wallets() repo.WalletRepository                       { return r.wallets }
func (r *txReposGorm) WalletTransactions() repo.WalletTransactionRepository { return r.walletTxs }
func (r *txReposGorm) Bids() repo.BidRepository                             { return r.bids }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository                   { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:       NewOrderGormRepository(tx),
			tracking:     NewTrackingGormRepository(tx),
			ratings:      NewRatingGormRepository(tx),
			tickets:      NewTicketGormRepository(tx),
			products:     NewProductGormRepository(tx),
			pickupPoints: NewPickupPointGormRepository(tx),
			wallets:      NewWalletGormRepository(tx),
			walletTxs:    NewWalletTransactionGormRepository(tx),
			bids:         NewBidGormRepository(tx),
			auditLogs:    NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
