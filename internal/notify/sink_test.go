package notify_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"uniket/internal/domain/model"
	"uniket/internal/notify"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type notificationRepoMock struct {
	mock.Mock
}

func (m *notificationRepoMock) Create(ctx context.Context, n model.Notification) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *notificationRepoMock) ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, limit)
	items, _ := args.Get(0).([]model.Notification)
	return items, args.Error(1)
}

func (m *notificationRepoMock) MarkRead(ctx context.Context, notificationID int64, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *notificationRepoMock) ArchiveOld(ctx context.Context, userID int64, keep int) error {
	args := m.Called(ctx, userID, keep)
	return args.Error(0)
}

type adminAlertRepoMock struct {
	mock.Mock
}

func (m *adminAlertRepoMock) Create(ctx context.Context, a model.AdminAlert) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *adminAlertRepoMock) ListUnresolved(ctx context.Context, limit int) ([]model.AdminAlert, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.AdminAlert)
	return items, args.Error(1)
}

func (m *adminAlertRepoMock) Resolve(ctx context.Context, alertID int64) error {
	args := m.Called(ctx, alertID)
	return args.Error(0)
}

func newSink() (*notify.DBSink, *notificationRepoMock, *adminAlertRepoMock) {
	notifications := new(notificationRepoMock)
	alerts := new(adminAlertRepoMock)
	return notify.NewDBSink(notifications, alerts, log.New("test")), notifications, alerts
}

func TestDBSink_TruncatesLongMessage(t *testing.T) {
	sink, notifications, _ := newSink()

	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
		return len(n.Message) == 1000
	})).Return(int64(1), nil)
	notifications.On("ArchiveOld", mock.Anything, int64(2), 100).Return(nil)

	sink.BestEffortNotify(context.Background(), notify.Input{
		UserID:  2,
		Type:    model.NotificationTypeOrderStatus,
		Message: strings.Repeat("x", 2000),
	})

	notifications.AssertExpectations(t)
}

func TestDBSink_FraudAlertWritesAdminAlert(t *testing.T) {
	sink, notifications, alerts := newSink()

	notifications.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)
	notifications.On("ArchiveOld", mock.Anything, int64(2), 100).Return(nil)
	alerts.On("Create", mock.Anything, mock.MatchedBy(func(a model.AdminAlert) bool {
		return a.Type == "SUSPICIOUS_LOGIN" && a.Severity == model.AlertSeverityHigh && a.UserID == 2
	})).Return(int64(5), nil)

	sink.BestEffortNotify(context.Background(), notify.Input{
		UserID:    2,
		Type:      model.NotificationTypeFraudAlert,
		Message:   "suspicious logins",
		AlertType: "SUSPICIOUS_LOGIN",
	})

	alerts.AssertExpectations(t)
}

func TestDBSink_NonFraudTypeSkipsAdminAlert(t *testing.T) {
	sink, notifications, alerts := newSink()

	notifications.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)
	notifications.On("ArchiveOld", mock.Anything, int64(2), 100).Return(nil)

	sink.BestEffortNotify(context.Background(), notify.Input{
		UserID:  2,
		Type:    model.NotificationTypeOrderStatus,
		Message: "shipped",
	})

	alerts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDBSink_RepoFailureDoesNotPropagate(t *testing.T) {
	sink, notifications, _ := newSink()

	notifications.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	//失敗してもpanicもerrorもない。アーカイブまで進まないだけ
	sink.BestEffortNotify(context.Background(), notify.Input{
		UserID:  2,
		Type:    model.NotificationTypeOrderStatus,
		Message: "shipped",
	})

	notifications.AssertNotCalled(t, "ArchiveOld", mock.Anything, mock.Anything, mock.Anything)
}

func TestDBSink_DataSerializedToJSON(t *testing.T) {
	sink, notifications, _ := newSink()

	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
		return strings.Contains(n.DataJSON, `"trackingId":"TRK-AAAA1111"`)
	})).Return(int64(1), nil)
	notifications.On("ArchiveOld", mock.Anything, int64(2), 100).Return(nil)

	sink.BestEffortNotify(context.Background(), notify.Input{
		UserID:  2,
		Type:    model.NotificationTypeOrderStatus,
		Message: "shipped",
		Data:    notify.OrderStatusData{OrderID: 1, Status: "shipped", TrackingID: "TRK-AAAA1111"},
	})

	notifications.AssertExpectations(t)
}

func TestDBSink_ResponseFieldTruncated(t *testing.T) {
	sink, notifications, alerts := newSink()

	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
		//responseフィールドは500文字で切られる
		return strings.Contains(n.DataJSON, `"response"`) && len(n.DataJSON) < 700
	})).Return(int64(1), nil)
	notifications.On("ArchiveOld", mock.Anything, int64(1), 100).Return(nil)
	alerts.On("Create", mock.Anything, mock.Anything).Return(int64(5), nil)

	sink.BestEffortNotify(context.Background(), notify.Input{
		UserID:    1,
		Type:      model.NotificationTypeFraudAlert,
		Message:   "anomaly",
		AlertType: "SUSPICIOUS_ORDERS",
		Data: notify.FraudAlertData{
			AlertType: "SUSPICIOUS_ORDERS",
			UserID:    2,
			Response:  strings.Repeat("r", 2000),
		},
	})

	notifications.AssertExpectations(t)
}

func TestSeverityFor_UnknownDefaultsToMedium(t *testing.T) {
	assert.Equal(t, model.AlertSeverityHigh, notify.SeverityFor("MULTIPLE_ACCOUNTS"))
	assert.Equal(t, model.AlertSeverityLow, notify.SeverityFor("FLAGGED_PRODUCT"))
	assert.Equal(t, model.AlertSeverityMedium, notify.SeverityFor("SOMETHING_NEW"))
}
