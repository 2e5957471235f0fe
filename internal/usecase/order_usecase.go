package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"uniket/internal/domain/model"
	"uniket/internal/notify"
	"uniket/internal/realtime"
	repo "uniket/internal/repository"
	"uniket/internal/ticket"

	"github.com/google/uuid"
)

// 遅延生成するトラッキングのデフォルト値
const (
	defaultETADays         = 7
	trackingUpdateInterval = 24 * time.Hour
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	sink   notify.Sink
	pusher realtime.Pusher
	fraud  *FraudUsecase
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	sink notify.Sink,
	pusher realtime.Pusher,
	fraudUC *FraudUsecase,
) *OrderUsecase {
	return &OrderUsecase{
		tx:     tx,
		orders: orders,
		sink:   sink,
		pusher: pusher,
		fraud:  fraudUC,
	}
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type ShippingAddressInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type PlaceOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress ShippingAddressInput
	DeliveryMethod  string
	PickupPointID   *int64
	PaymentMethod   string
	PaymentRef      string
	TotalAmount     int64
}

type OrderOutput struct {
	ID                    int64      `json:"id"`
	CustomerID            int64      `json:"customer_id"`
	ProductID             int64      `json:"product_id"`
	Quantity              int64      `json:"quantity"`
	Total                 int64      `json:"total"`
	Status                string     `json:"status"`
	DeliveryMethod        string     `json:"delivery_method"`
	PickupPointID         *int64     `json:"pickup_point_id,omitempty"`
	PaymentMethod         string     `json:"payment_method"`
	TrackingID            string     `json:"tracking_id"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//複数商品を受け付けるAPI形だが、保存されるのは先頭の1件だけ（既知の制限）
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	item := in.Items[0]
	if item.ProductID <= 0 || item.Quantity <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item")
	}

	//配送先の必須チェック
	addr := in.ShippingAddress
	if strings.TrimSpace(addr.Name) == "" || strings.TrimSpace(addr.Phone) == "" || strings.TrimSpace(addr.Email) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping address incomplete")
	}

	method := model.DeliveryMethod(in.DeliveryMethod)
	switch method {
	case model.DeliveryMethodDelivery, model.DeliveryMethodPickup:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid delivery method")
	}

	if in.TotalAmount <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid total amount")
	}

	//決済参照が来なければこちらで採番する
	if strings.TrimSpace(in.PaymentRef) == "" {
		in.PaymentRef = uuid.NewString()
	}

	var (
		out      OrderOutput
		vendorID int64
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//PICKUPのときは受け取り場所の存在確認
		if method == model.DeliveryMethodPickup {
			if in.PickupPointID == nil || *in.PickupPointID <= 0 {
				return NewHTTPError(http.StatusBadRequest, "pickup point required")
			}
			if _, err := r.PickupPoints().FindByID(ctx, *in.PickupPointID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusNotFound, "Selected pickup point not found")
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		p, err := r.Products().FindByID(ctx, item.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			return NewHTTPError(http.StatusBadRequest, "product not available")
		}
		vendorID = p.VendorID

		now := time.Now()
		order := model.Order{
			CustomerID:     customerID,
			ProductID:      p.ID,
			VendorID:       p.VendorID,
			Quantity:       item.Quantity,
			Total:          in.TotalAmount,
			Status:         model.OrderStatusPending,
			DeliveryMethod: method,
			PickupPointID:  in.PickupPointID,
			PaymentMethod:  in.PaymentMethod,
			PaymentRef:     in.PaymentRef,
			ShippingName:   strings.TrimSpace(addr.Name),
			ShippingPhone:  strings.TrimSpace(addr.Phone),
			ShippingEmail:  strings.TrimSpace(addr.Email),
			TrackingID:     newTrackingID(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		order.ID = orderID

		//チケット商品なら数量分の入場チケットを同時発行する
		if p.IsTicket {
			if err := u.issueTickets(ctx, r, order, p); err != nil {
				return err
			}
		}

		out = toOrderOutput(order)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//出品者へ通知（ベストエフォート）
	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  vendorID,
		Type:    model.NotificationTypeNewOrder,
		Message: fmt.Sprintf("New order %s received for product #%d (qty %d)", out.TrackingID, out.ProductID, out.Quantity),
		Role:    string(model.RoleVendor),
		Data: notify.OrderStatusData{
			OrderID:    out.ID,
			Status:     out.Status,
			TrackingID: out.TrackingID,
		},
	})

	//注文の連打はこの契機で見る（ベストエフォート）
	u.fraud.CheckSuspiciousOrders(ctx, customerID)

	return out, nil
}

// 数量分の独立したチケット行を発行する。通知は一括で1件
func (u *OrderUsecase) issueTickets(ctx context.Context, r repo.TxRepos, order model.Order, p model.Product) error {
	if !p.HasEventDetails() {
		return NewHTTPError(http.StatusBadRequest, "product is not a ticketed event")
	}

	now := time.Now()
	tickets := make([]model.Ticket, 0, order.Quantity)
	numbers := make([]string, 0, order.Quantity)

	for i := int64(0); i < order.Quantity; i++ {
		number := ticket.GenerateNumber(now)
		qr, err := ticket.GenerateQRCode(number, p.ID, order.CustomerID, now)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "ticket generation failed")
		}

		tickets = append(tickets, model.Ticket{
			TicketNumber: number,
			QRCode:       qr,
			ProductID:    p.ID,
			OrderID:      order.ID,
			UserID:       order.CustomerID,
			Status:       model.TicketStatusValid,
		})
		numbers = append(numbers, number)
	}

	if _, err := r.Tickets().CreateBatch(ctx, tickets); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  order.CustomerID,
		Type:    model.NotificationTypeTicket,
		Message: fmt.Sprintf("%d ticket(s) issued for %s", len(tickets), p.EventName),
		Data: notify.TicketBatchData{
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  len(tickets),
			Numbers:   numbers,
		},
	})

	return nil
}

type UpdateOrderStatusInput struct {
	Status                string
	EstimatedDeliveryTime *time.Time
}

// ステータスは pending→processing→shipped→delivered の一方向。
// cancelledは非終端からのみ。遷移はすべて出品者/管理者の操作で起きる
var statusRank = map[model.OrderStatus]int{
	model.OrderStatusPending:    0,
	model.OrderStatusProcessing: 1,
	model.OrderStatusShipped:    2,
	model.OrderStatusDelivered:  3,
}

func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorID int64, actorRole model.Role, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	if actorID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	switch newStatus {
	case model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var (
		out        OrderOutput
		customerID int64
		etaText    string
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//出品者本人か管理者だけが動かせる
		if actorRole != model.RoleAdmin && o.VendorID != actorID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		//終端からは動かない
		if o.Status.IsTerminal() {
			return NewHTTPError(http.StatusBadRequest, "order is in a terminal state")
		}

		//逆行は許さない
		if newStatus != model.OrderStatusCancelled && statusRank[newStatus] < statusRank[o.Status] {
			return NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}

		eta := in.EstimatedDeliveryTime

		//最初にshippedへ遷移したときだけトラッキングを遅延生成する
		if newStatus == model.OrderStatusShipped {
			if _, err := r.Tracking().FindByOrderID(ctx, o.ID); errors.Is(err, repo.ErrNotFound) {
				created, cerr := u.createInitialTracking(ctx, r, o, eta)
				if cerr != nil {
					return cerr
				}
				if eta == nil {
					d := created.EstimatedDelivery
					eta = &d
				}
			} else if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, newStatus, eta); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//deliveredで売上を出品者ウォレットに計上する
		if newStatus == model.OrderStatusDelivered {
			if err := u.creditVendor(ctx, r, o); err != nil {
				return err
			}
		}

		o.Status = newStatus
		o.EstimatedDeliveryTime = eta
		out = toOrderOutput(o)
		customerID = o.CustomerID
		if eta != nil {
			etaText = eta.Format("January 2, 2006")
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	msg := fmt.Sprintf("Your order %s is now %s", out.TrackingID, out.Status)
	if etaText != "" {
		msg += ". Estimated delivery: " + etaText
	}

	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  customerID,
		Type:    model.NotificationTypeOrderStatus,
		Message: msg,
		Data: notify.OrderStatusData{
			OrderID:               out.ID,
			Status:                out.Status,
			TrackingID:            out.TrackingID,
			EstimatedDeliveryTime: out.EstimatedDeliveryTime,
		},
	})

	//リアルタイム配信もベストエフォート。失敗してもこのリクエストは成功のまま
	u.pusher.Push(customerID, realtime.Event{
		Type: "order_status",
		Data: out,
	})

	return out, nil
}

func (u *OrderUsecase) createInitialTracking(ctx context.Context, r repo.TxRepos, o model.Order, eta *time.Time) (model.OrderTracking, error) {
	now := time.Now()

	estimated := now.AddDate(0, 0, defaultETADays)
	if eta != nil {
		estimated = *eta
	}

	t := model.OrderTracking{
		TrackingID:        o.TrackingID,
		OrderID:           o.ID,
		Status:            model.TrackingStatusInTransit,
		EstimatedDelivery: estimated,
		LastUpdate:        now,
		NextUpdate:        now.Add(trackingUpdateInterval),
	}
	t.AppendHistory(model.TrackingEvent{
		Status:      model.TrackingStatusInTransit,
		Timestamp:   now,
		Description: "Shipment picked up by carrier",
	})

	if _, err := r.Tracking().Create(ctx, t); err != nil {
		return model.OrderTracking{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return t, nil
}

// deliveredの売上計上。fund行とウォレット残高を同一トランザクションで更新する
func (u *OrderUsecase) creditVendor(ctx context.Context, r repo.TxRepos, o model.Order) error {
	w, err := r.Wallets().FindOrCreateByUserID(ctx, o.VendorID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if _, err := r.WalletTransactions().Create(ctx, model.WalletTransaction{
		WalletID:  w.ID,
		Type:      model.TransactionTypeFund,
		Amount:    o.Total,
		Status:    model.TransactionStatusCompleted,
		Reference: o.TrackingID,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := r.Wallets().UpdateBalance(ctx, w.ID, w.Balance+o.Total); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *OrderUsecase) Cancel(ctx context.Context, actorID int64, orderID int64) (OrderOutput, error) {
	if actorID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var (
		out      OrderOutput
		vendorID int64
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文者本人か、その商品の出品者だけ
		if o.CustomerID != actorID && o.VendorID != actorID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, "order already cancelled")
		}
		if o.Status == model.OrderStatusDelivered {
			return NewHTTPError(http.StatusBadRequest, "cannot cancel delivered order")
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled, nil); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o)
		vendorID = o.VendorID
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//両者に通知する
	data := notify.OrderCancelledData{OrderID: out.ID, TrackingID: out.TrackingID}
	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  out.CustomerID,
		Type:    model.NotificationTypeOrderCancelled,
		Message: fmt.Sprintf("Order %s has been cancelled", out.TrackingID),
		Data:    data,
	})
	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  vendorID,
		Type:    model.NotificationTypeOrderCancelled,
		Message: fmt.Sprintf("Order %s has been cancelled", out.TrackingID),
		Role:    string(model.RoleVendor),
		Data:    data,
	})

	return out, nil
}

type RateOrderInput struct {
	Rating        int
	Comment       string
	Delivery      *int
	Quality       *int
	Communication *int
}

type RatingOutput struct {
	ID                  int64  `json:"id"`
	OrderID             int64  `json:"order_id"`
	Rating              int    `json:"rating"`
	Comment             string `json:"comment"`
	DeliveryRating      int    `json:"delivery_rating"`
	QualityRating       int    `json:"quality_rating"`
	CommunicationRating int    `json:"communication_rating"`
}

func (u *OrderUsecase) Rate(ctx context.Context, customerID int64, orderID int64, in RateOrderInput) (RatingOutput, error) {
	if customerID <= 0 {
		return RatingOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return RatingOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return RatingOutput{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	var (
		out        RatingOutput
		vendorID   int64
		trackingID string
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.CustomerID != customerID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}
		if o.Status != model.OrderStatusDelivered {
			return NewHTTPError(http.StatusBadRequest, "order not delivered")
		}

		//1注文につき評価は1回だけ
		if _, err := r.Ratings().FindByOrderID(ctx, o.ID); err == nil {
			return NewHTTPError(http.StatusBadRequest, "order already rated")
		} else if !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カテゴリ未指定は全体評価で埋める
		rating := model.OrderRating{
			OrderID:             o.ID,
			CustomerID:          customerID,
			Rating:              in.Rating,
			Comment:             in.Comment,
			DeliveryRating:      categoryOrDefault(in.Delivery, in.Rating),
			QualityRating:       categoryOrDefault(in.Quality, in.Rating),
			CommunicationRating: categoryOrDefault(in.Communication, in.Rating),
		}

		id, err := r.Ratings().Create(ctx, rating)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = RatingOutput{
			ID:                  id,
			OrderID:             o.ID,
			Rating:              rating.Rating,
			Comment:             rating.Comment,
			DeliveryRating:      rating.DeliveryRating,
			QualityRating:       rating.QualityRating,
			CommunicationRating: rating.CommunicationRating,
		}
		vendorID = o.VendorID
		trackingID = o.TrackingID
		return nil
	})

	if err != nil {
		return RatingOutput{}, err
	}

	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  vendorID,
		Type:    model.NotificationTypeOrderRated,
		Message: fmt.Sprintf("Order %s was rated %d/5", trackingID, out.Rating),
		Role:    string(model.RoleVendor),
	})

	return out, nil
}

type TrackingOutput struct {
	OrderID    int64                 `json:"orderId"`
	TrackingID string                `json:"trackingId"`
	Status     string                `json:"status"`
	Tracking   trackingDetailOutput  `json:"tracking"`
	Product    trackingProductOutput `json:"product"`
}

type trackingDetailOutput struct {
	Status            string                `json:"status"`
	CurrentLocation   string                `json:"currentLocation"`
	Carrier           string                `json:"carrier"`
	EstimatedDelivery time.Time             `json:"estimatedDelivery"`
	LastUpdate        time.Time             `json:"lastUpdate"`
	NextUpdate        time.Time             `json:"nextUpdate"`
	History           []model.TrackingEvent `json:"history"`
}

type trackingProductOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (u *OrderUsecase) GetTracking(ctx context.Context, actorID int64, orderID int64) (TrackingOutput, error) {
	if actorID <= 0 {
		return TrackingOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return TrackingOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out TrackingOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//第三者には404を返す（403だと注文の存在が漏れる）
		if o.CustomerID != actorID && o.VendorID != actorID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		t, err := r.Tracking().FindByOrderID(ctx, o.ID)
		if errors.Is(err, repo.ErrNotFound) {
			//「注文がない」とは別のメッセージにする
			return NewHTTPError(http.StatusNotFound, "tracking information not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p, err := r.Products().FindByID(ctx, o.ProductID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = TrackingOutput{
			OrderID:    o.ID,
			TrackingID: o.TrackingID,
			Status:     string(o.Status),
			Tracking: trackingDetailOutput{
				Status:            string(t.Status),
				CurrentLocation:   t.CurrentLocation,
				Carrier:           t.Carrier,
				EstimatedDelivery: t.EstimatedDelivery,
				LastUpdate:        t.LastUpdate,
				NextUpdate:        t.NextUpdate,
				History:           t.History(),
			},
			Product: trackingProductOutput{ID: p.ID, Name: p.Name},
		}
		return nil
	})

	if err != nil {
		return TrackingOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, actorID int64, orderID int64) (OrderOutput, error) {
	if actorID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//第三者には404（存在を漏らさない）
	if o.CustomerID != actorID && o.VendorID != actorID {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	return toOrderOutput(o), nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64) ([]OrderOutput, error) {
	if customerID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, _, err := u.orders.ListByCustomerID(ctx, customerID, 1, 50)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs, nil
}

func (u *OrderUsecase) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]OrderOutput, error) {
	if f.Page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, _, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs, nil
}

func categoryOrDefault(v *int, def int) int {
	if v == nil || *v < 1 || *v > 5 {
		return def
	}
	return *v
}

// 画面に見せる注文参照: TRK- + 大文字hex8桁
func newTrackingID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("TRK-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return "TRK-" + strings.ToUpper(hex.EncodeToString(b))
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:                    o.ID,
		CustomerID:            o.CustomerID,
		ProductID:             o.ProductID,
		Quantity:              o.Quantity,
		Total:                 o.Total,
		Status:                string(o.Status),
		DeliveryMethod:        string(o.DeliveryMethod),
		PickupPointID:         o.PickupPointID,
		PaymentMethod:         o.PaymentMethod,
		TrackingID:            o.TrackingID,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		CreatedAt:             o.CreatedAt,
	}
}
