package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	Tracking() TrackingRepository
	Ratings() RatingRepository
	Tickets() TicketRepository
	Products() ProductRepository
	PickupPoints() PickupPointRepository
	Wallets() WalletRepository
	WalletTransactions() WalletTransactionRepository
	Bids() BidRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
