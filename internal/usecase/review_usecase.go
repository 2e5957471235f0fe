package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"uniket/internal/domain/model"
	"uniket/internal/notify"
	repo "uniket/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
	auditRepo   repo.AuditLogRepository
	sink        notify.Sink
}

// DI
func NewReviewUsecase(
	reviewRepo repo.ReviewRepository,
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
	sink notify.Sink,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		sink:        sink,
	}
}

type CreateReviewInput struct {
	ProductID int64
	Rating    int
	Comment   string
}

func (u *ReviewUsecase) CreateReview(ctx context.Context, userID int64, in CreateReviewInput) (model.Review, error) {
	if userID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}
	if len(in.Comment) > 2000 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "comment too long")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//自分の商品にはレビューできない
	if p.VendorID == userID {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "cannot review your own product")
	}

	rv := model.Review{
		ProductID: in.ProductID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Status:    model.ReviewStatusVisible,
	}
	id, err := u.reviewRepo.Create(ctx, rv)
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	rv.ID = id

	//出品者に通知（失敗しても本処理は成功扱い）
	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  p.VendorID,
		Type:    model.NotificationTypeReview,
		Message: fmt.Sprintf("New %d-star review on %s", in.Rating, p.Name),
		Role:    string(model.RoleVendor),
	})

	return rv, nil
}

func (u *ReviewUsecase) ListProductReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	items, err := u.reviewRepo.ListVisibleByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 管理者によるレビュー非表示（モデレーション）
func (u *ReviewUsecase) HideReview(ctx context.Context, adminID int64, reviewID int64, reason string) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if reviewID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid review id")
	}

	rv, err := u.reviewRepo.FindByID(ctx, reviewID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "review not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if rv.Status == model.ReviewStatusHidden {
		return NewHTTPError(http.StatusBadRequest, "review already hidden")
	}

	if err := u.reviewRepo.UpdateStatus(ctx, reviewID, model.ReviewStatusHidden); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（HIDE_REVIEW）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminID,
		Action:       model.AuditActionHideReview,
		ResourceType: model.AuditResourceReview,
		ResourceID:   reviewID,
		BeforeJSON:   `{"status":"` + string(rv.Status) + `"}`,
		AfterJSON:    `{"status":"` + string(model.ReviewStatusHidden) + `","reason":` + strconv.Quote(reason) + `}`,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//投稿者に通知
	msg := "Your review was hidden by a moderator"
	if reason != "" {
		msg = fmt.Sprintf("Your review was hidden by a moderator: %s", reason)
	}
	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  rv.UserID,
		Type:    model.NotificationTypeReview,
		Message: msg,
		Role:    string(model.RoleCustomer),
	})

	return nil
}
