package usecase

import (
	"context"
	"errors"
	"net/http"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"
)

type NotificationUsecase struct {
	notificationRepo repo.NotificationRepository
	alertRepo        repo.AdminAlertRepository
}

// DI
func NewNotificationUsecase(
	notificationRepo repo.NotificationRepository,
	alertRepo repo.AdminAlertRepository,
) *NotificationUsecase {
	return &NotificationUsecase{
		notificationRepo: notificationRepo,
		alertRepo:        alertRepo,
	}
}

func (u *NotificationUsecase) ListMyNotifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	items, err := u.notificationRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *NotificationUsecase) MarkRead(ctx context.Context, userID int64, notificationID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if notificationID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}

	err := u.notificationRepo.MarkRead(ctx, notificationID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		//他人の通知は存在も知らせない
		return NewHTTPError(http.StatusNotFound, "notification not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 管理者向け：未解決アラート一覧。ルートガードに加えてここでもroleを確認する
func (u *NotificationUsecase) ListUnresolvedAlerts(ctx context.Context, adminID int64, adminRole model.Role, limit int) ([]model.AdminAlert, error) {
	if adminID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if adminRole != model.RoleAdmin {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	items, err := u.alertRepo.ListUnresolved(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *NotificationUsecase) ResolveAlert(ctx context.Context, adminID int64, adminRole model.Role, alertID int64) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if adminRole != model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if alertID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}

	err := u.alertRepo.Resolve(ctx, alertID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "alert not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
