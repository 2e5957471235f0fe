package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"uniket/internal/domain/model"
	"uniket/internal/notify"
	"uniket/internal/realtime"
	repo "uniket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	assert.Error(t, err)
	if err != nil {
		assert.True(t, strings.Contains(err.Error(), want), "error %q should contain %q", err.Error(), want)
	}
}

// =====================
// Mocks（衝突回避の命名）
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, eta *time.Time) error {
	args := m.Called(ctx, orderID, status, eta)
	return args.Error(0)
}

func (m *OrderRepoMock) CountByCustomerSince(ctx context.Context, customerID int64, since time.Time) (int64, error) {
	args := m.Called(ctx, customerID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) AmountStatsByCustomer(ctx context.Context, customerID int64) (float64, int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

type TrackingRepoMock struct{ mock.Mock }

func (m *TrackingRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.OrderTracking, error) {
	args := m.Called(ctx, orderID)
	t, _ := args.Get(0).(model.OrderTracking)
	return t, args.Error(1)
}

func (m *TrackingRepoMock) Create(ctx context.Context, t model.OrderTracking) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TrackingRepoMock) Update(ctx context.Context, t model.OrderTracking) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type RatingRepoMock struct{ mock.Mock }

func (m *RatingRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.OrderRating, error) {
	args := m.Called(ctx, orderID)
	r, _ := args.Get(0).(model.OrderRating)
	return r, args.Error(1)
}

func (m *RatingRepoMock) Create(ctx context.Context, r model.OrderRating) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

type TicketRepoMock struct{ mock.Mock }

func (m *TicketRepoMock) FindByID(ctx context.Context, ticketID int64) (model.Ticket, error) {
	args := m.Called(ctx, ticketID)
	t, _ := args.Get(0).(model.Ticket)
	return t, args.Error(1)
}

func (m *TicketRepoMock) FindByQRCode(ctx context.Context, qrCode string) (model.Ticket, error) {
	args := m.Called(ctx, qrCode)
	t, _ := args.Get(0).(model.Ticket)
	return t, args.Error(1)
}

func (m *TicketRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.Ticket, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.Ticket)
	return items, args.Error(1)
}

func (m *TicketRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Ticket, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Ticket)
	return items, args.Error(1)
}

func (m *TicketRepoMock) CreateBatch(ctx context.Context, tickets []model.Ticket) ([]model.Ticket, error) {
	args := m.Called(ctx, tickets)
	items, _ := args.Get(0).([]model.Ticket)
	return items, args.Error(1)
}

func (m *TicketRepoMock) UpdateStatus(ctx context.Context, ticketID int64, status model.TicketStatus, usedAt *time.Time) error {
	args := m.Called(ctx, ticketID, status, usedAt)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PickupPointRepoMock struct{ mock.Mock }

func (m *PickupPointRepoMock) FindByID(ctx context.Context, id int64) (model.PickupPoint, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.PickupPoint)
	return p, args.Error(1)
}

func (m *PickupPointRepoMock) ListActive(ctx context.Context) ([]model.PickupPoint, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.PickupPoint)
	return items, args.Error(1)
}

type WalletRepoMock struct{ mock.Mock }

func (m *WalletRepoMock) FindByID(ctx context.Context, walletID int64) (model.Wallet, error) {
	args := m.Called(ctx, walletID)
	w, _ := args.Get(0).(model.Wallet)
	return w, args.Error(1)
}

func (m *WalletRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Wallet, error) {
	args := m.Called(ctx, userID)
	w, _ := args.Get(0).(model.Wallet)
	return w, args.Error(1)
}

func (m *WalletRepoMock) FindOrCreateByUserID(ctx context.Context, userID int64) (model.Wallet, error) {
	args := m.Called(ctx, userID)
	w, _ := args.Get(0).(model.Wallet)
	return w, args.Error(1)
}

func (m *WalletRepoMock) UpdateBalance(ctx context.Context, walletID int64, newBalance int64) error {
	args := m.Called(ctx, walletID, newBalance)
	return args.Error(0)
}

type WalletTxRepoMock struct{ mock.Mock }

func (m *WalletTxRepoMock) FindByID(ctx context.Context, txID int64) (model.WalletTransaction, error) {
	args := m.Called(ctx, txID)
	t, _ := args.Get(0).(model.WalletTransaction)
	return t, args.Error(1)
}

func (m *WalletTxRepoMock) ListByWalletID(ctx context.Context, walletID int64, limit int) ([]model.WalletTransaction, error) {
	args := m.Called(ctx, walletID, limit)
	items, _ := args.Get(0).([]model.WalletTransaction)
	return items, args.Error(1)
}

func (m *WalletTxRepoMock) Create(ctx context.Context, t model.WalletTransaction) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WalletTxRepoMock) UpdateStatus(ctx context.Context, txID int64, status model.TransactionStatus) error {
	args := m.Called(ctx, txID, status)
	return args.Error(0)
}

type BidRepoMock struct{ mock.Mock }

func (m *BidRepoMock) FindByID(ctx context.Context, bidID int64) (model.Bid, error) {
	args := m.Called(ctx, bidID)
	b, _ := args.Get(0).(model.Bid)
	return b, args.Error(1)
}

func (m *BidRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.Bid, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.Bid)
	return items, args.Error(1)
}

func (m *BidRepoMock) Create(ctx context.Context, b model.Bid) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BidRepoMock) UpdateStatus(ctx context.Context, bidID int64, status model.BidStatus) error {
	args := m.Called(ctx, bidID, status)
	return args.Error(0)
}

func (m *BidRepoMock) CountByUserSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BidRepoMock) AmountStatsByUser(ctx context.Context, userID int64) (float64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, l model.AuditLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type AttemptRepoMock struct{ mock.Mock }

func (m *AttemptRepoMock) Create(ctx context.Context, a model.LoginAttempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AttemptRepoMock) CountFailedSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AttemptRepoMock) CountDistinctUsersByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	args := m.Called(ctx, ip, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AttemptRepoMock) SuccessStats(ctx context.Context, userID int64) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) FindByID(ctx context.Context, reviewID int64) (model.Review, error) {
	args := m.Called(ctx, reviewID)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) ListVisibleByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func (m *ReviewRepoMock) Create(ctx context.Context, r model.Review) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReviewRepoMock) UpdateStatus(ctx context.Context, reviewID int64, status model.ReviewStatus) error {
	args := m.Called(ctx, reviewID, status)
	return args.Error(0)
}

type NotificationRepoMock struct{ mock.Mock }

func (m *NotificationRepoMock) Create(ctx context.Context, n model.Notification) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepoMock) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, limit)
	items, _ := args.Get(0).([]model.Notification)
	return items, args.Error(1)
}

func (m *NotificationRepoMock) MarkRead(ctx context.Context, notificationID int64, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *NotificationRepoMock) ArchiveOld(ctx context.Context, userID int64, keep int) error {
	args := m.Called(ctx, userID, keep)
	return args.Error(0)
}

type AdminAlertRepoMock struct{ mock.Mock }

func (m *AdminAlertRepoMock) Create(ctx context.Context, a model.AdminAlert) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AdminAlertRepoMock) ListUnresolved(ctx context.Context, limit int) ([]model.AdminAlert, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.AdminAlert)
	return items, args.Error(1)
}

func (m *AdminAlertRepoMock) Resolve(ctx context.Context, alertID int64) error {
	args := m.Called(ctx, alertID)
	return args.Error(0)
}

// =====================
// 通知/配信のスパイ
// =====================

type SinkSpy struct {
	mu     sync.Mutex
	Inputs []notify.Input
}

func (s *SinkSpy) BestEffortNotify(ctx context.Context, in notify.Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inputs = append(s.Inputs, in)
}

func (s *SinkSpy) Last() (notify.Input, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Inputs) == 0 {
		return notify.Input{}, false
	}
	return s.Inputs[len(s.Inputs)-1], true
}

type PusherSpy struct {
	mu     sync.Mutex
	Events []realtime.Event
}

func (p *PusherSpy) Push(userID int64, ev realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, ev)
}

// =====================
// Txのフェイク（そのままfnを呼ぶだけ）
// =====================

type fakeTxRepos struct {
	orders       *OrderRepoMock
	tracking     *TrackingRepoMock
	ratings      *RatingRepoMock
	tickets      *TicketRepoMock
	products     *ProductRepoMock
	pickupPoints *PickupPointRepoMock
	wallets      *WalletRepoMock
	walletTxs    *WalletTxRepoMock
	bids         *BidRepoMock
	auditLogs    *AuditRepoMock
}

func newFakeTxRepos() *fakeTxRepos {
	return &fakeTxRepos{
		orders:       new(OrderRepoMock),
		tracking:     new(TrackingRepoMock),
		ratings:      new(RatingRepoMock),
		tickets:      new(TicketRepoMock),
		products:     new(ProductRepoMock),
		pickupPoints: new(PickupPointRepoMock),
		wallets:      new(WalletRepoMock),
		walletTxs:    new(WalletTxRepoMock),
		bids:         new(BidRepoMock),
		auditLogs:    new(AuditRepoMock),
	}
}

func (f *fakeTxRepos) Orders() repo.OrderRepository                         { return f.orders }
func (f *fakeTxRepos) Tracking() repo.TrackingRepository                    { return f.tracking }
func (f *fakeTxRepos) Ratings() repo.RatingRepository                       { return f.ratings }
func (f *fakeTxRepos) Tickets() repo.TicketRepository                       { return f.tickets }
func (f *fakeTxRepos) Products() repo.ProductRepository                     { return f.products }
func (f *fakeTxRepos) PickupPoints() repo.PickupPointRepository             { return f.pickupPoints }
func (f *fakeTxRepos) Wallets() repo.WalletRepository                       { return f.wallets }
func (f *fakeTxRepos) WalletTransactions() repo.WalletTransactionRepository { return f.walletTxs }
func (f *fakeTxRepos) Bids() repo.BidRepository                             { return f.bids }
func (f *fakeTxRepos) AuditLogs() repo.AuditLogRepository                   { return f.auditLogs }

type fakeTxManager struct {
	repos *fakeTxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}
