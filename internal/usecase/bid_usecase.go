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

type BidUsecase struct {
	bids     repo.BidRepository
	products repo.ProductRepository
	sink     notify.Sink
	fraud    *FraudUsecase
}

func NewBidUsecase(
	bids repo.BidRepository,
	products repo.ProductRepository,
	sink notify.Sink,
	fraudUC *FraudUsecase,
) *BidUsecase {
	return &BidUsecase{
		bids:     bids,
		products: products,
		sink:     sink,
		fraud:    fraudUC,
	}
}

type PlaceBidInput struct {
	Amount int64
}

// bidding windowの中でだけ入札を受け付ける
func (u *BidUsecase) Place(ctx context.Context, userID int64, productID int64, in PlaceBidInput) (model.Bid, error) {
	if userID <= 0 {
		return model.Bid{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Bid{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Amount <= 0 {
		return model.Bid{}, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Bid{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Bid{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !p.EnableBidding {
		return model.Bid{}, NewHTTPError(http.StatusBadRequest, "bidding not enabled for this product")
	}
	if in.Amount < p.StartingBid {
		return model.Bid{}, NewHTTPError(http.StatusBadRequest, "bid below starting bid")
	}
	if p.BidEndDate != nil && time.Now().After(*p.BidEndDate) {
		return model.Bid{}, NewHTTPError(http.StatusBadRequest, "bidding window closed")
	}

	//自分の商品には入札できない
	if p.VendorID == userID {
		return model.Bid{}, NewHTTPError(http.StatusBadRequest, "cannot bid on own product")
	}

	b := model.Bid{
		ProductID: productID,
		UserID:    userID,
		Amount:    in.Amount,
		Status:    model.BidStatusPending,
	}

	id, err := u.bids.Create(ctx, b)
	if err != nil {
		return model.Bid{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	b.ID = id

	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  p.VendorID,
		Type:    model.NotificationTypeBid,
		Message: fmt.Sprintf("New bid of %d on %s", in.Amount, p.Name),
		Role:    string(model.RoleVendor),
	})

	//入札の連打はこの契機で見る（ベストエフォート）
	u.fraud.CheckSuspiciousBidding(ctx, userID)

	return b, nil
}

// 出品者による承認/却下
func (u *BidUsecase) Review(ctx context.Context, vendorID int64, bidID int64, approve bool) (model.Bid, error) {
	if vendorID <= 0 {
		return model.Bid{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if bidID <= 0 {
		return model.Bid{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	b, err := u.bids.FindByID(ctx, bidID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Bid{}, NewHTTPError(http.StatusNotFound, "bid not found")
	}
	if err != nil {
		return model.Bid{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.products.FindByID(ctx, b.ProductID)
	if err != nil {
		return model.Bid{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.VendorID != vendorID {
		return model.Bid{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if b.Status != model.BidStatusPending {
		return model.Bid{}, NewHTTPError(http.StatusBadRequest, "bid already reviewed")
	}

	newStatus := model.BidStatusRejected
	if approve {
		newStatus = model.BidStatusApproved
	}

	if err := u.bids.UpdateStatus(ctx, b.ID, newStatus); err != nil {
		return model.Bid{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	b.Status = newStatus

	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  b.UserID,
		Type:    model.NotificationTypeBid,
		Message: fmt.Sprintf("Your bid on %s was %s", p.Name, string(newStatus)),
	})

	return b, nil
}

func (u *BidUsecase) ListByProduct(ctx context.Context, vendorID int64, productID int64) ([]model.Bid, error) {
	if vendorID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.VendorID != vendorID {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	items, err := u.bids.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
