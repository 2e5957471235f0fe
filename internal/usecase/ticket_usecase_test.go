package usecase_test

import (
	"context"
	"testing"
	"time"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"
	"uniket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTicketMocks() (*TicketRepoMock, *ProductRepoMock, *UserRepoMock, *SinkSpy) {
	return new(TicketRepoMock), new(ProductRepoMock), new(UserRepoMock), &SinkSpy{}
}

func TestTicketUsecase_Verify_UnknownQRCode(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, false)

	tickets.On("FindByQRCode", mock.Anything, "nope").Return(model.Ticket{}, repo.ErrNotFound)

	_, err := uc.Verify(context.Background(), 5, "nope")
	assertErrContains(t, err, "Invalid ticket")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestTicketUsecase_Verify_OtherVendorForbidden(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, false)

	tickets.On("FindByQRCode", mock.Anything, "qr").
		Return(model.Ticket{ID: 1, ProductID: 10, Status: model.TicketStatusValid}, nil)
	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, VendorID: 5}, nil)

	_, err := uc.Verify(context.Background(), 6, "qr")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
}

func TestTicketUsecase_Verify_LazyExpiry(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, false)

	past := time.Now().Add(-time.Hour)
	tickets.On("FindByQRCode", mock.Anything, "qr").
		Return(model.Ticket{ID: 1, ProductID: 10, Status: model.TicketStatusValid}, nil)
	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, VendorID: 5, ValidUntil: &past}, nil)

	//読み取り契機でEXPIREDに倒してから拒否する
	tickets.On("UpdateStatus", mock.Anything, int64(1), model.TicketStatusExpired, (*time.Time)(nil)).Return(nil)

	_, err := uc.Verify(context.Background(), 5, "qr")
	assertErrContains(t, err, "Ticket has expired")
	tickets.AssertExpectations(t)
}

func TestTicketUsecase_Verify_UsedTicketMessage(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, false)

	tickets.On("FindByQRCode", mock.Anything, "qr").
		Return(model.Ticket{ID: 1, ProductID: 10, Status: model.TicketStatusUsed}, nil)
	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, VendorID: 5}, nil)

	_, err := uc.Verify(context.Background(), 5, "qr")
	assertErrContains(t, err, "Ticket is used")
}

func TestTicketUsecase_Verify_Success(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, false)

	eventDate := time.Now().AddDate(0, 1, 0)
	tickets.On("FindByQRCode", mock.Anything, "qr").
		Return(model.Ticket{ID: 1, ProductID: 10, UserID: 2, TicketNumber: "TKT-20260831-00001", Status: model.TicketStatusValid}, nil)
	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{
			ID: 10, VendorID: 5,
			EventName: "Summer Live", EventDate: &eventDate, EventLocation: "Osaka",
			TicketType: "standard",
		}, nil)
	users.On("FindByID", mock.Anything, int64(2)).Return(&model.User{ID: 2, Name: "Hanako"}, nil)

	out, err := uc.Verify(context.Background(), 5, "qr")
	assert.NoError(t, err)
	assert.True(t, out.IsValid)
	assert.Equal(t, "Ticket verified successfully", out.Message)
	assert.Equal(t, "Summer Live", out.EventName)
	assert.Equal(t, "Hanako", out.UserName)
}

func TestTicketUsecase_MarkUsed_LenientAllowsRescan(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, false)

	//すでにUSEDでもデフォルト設定では通る
	tickets.On("FindByID", mock.Anything, int64(1)).
		Return(model.Ticket{ID: 1, ProductID: 10, UserID: 2, TicketNumber: "TKT-20260831-00001", Status: model.TicketStatusUsed}, nil)
	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, VendorID: 5}, nil)
	tickets.On("UpdateStatus", mock.Anything, int64(1), model.TicketStatusUsed, mock.Anything).Return(nil)

	out, err := uc.MarkUsed(context.Background(), 5, 1)
	assert.NoError(t, err)
	assert.Equal(t, model.TicketStatusUsed, out.Status)
	assert.NotNil(t, out.UsedAt)

	last, ok := sink.Last()
	assert.True(t, ok)
	assert.Equal(t, int64(2), last.UserID)
	assert.Equal(t, model.NotificationTypeTicket, last.Type)
}

func TestTicketUsecase_MarkUsed_StrictRejectsRescan(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, true)

	tickets.On("FindByID", mock.Anything, int64(1)).
		Return(model.Ticket{ID: 1, ProductID: 10, Status: model.TicketStatusUsed}, nil)
	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, VendorID: 5}, nil)

	_, err := uc.MarkUsed(context.Background(), 5, 1)
	assertErrContains(t, err, "Ticket is used")
	tickets.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketUsecase_ListEventTickets_MissingProductLooksForbidden(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, false)

	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	//存在しないIDも他人のIDも同じ403にする
	_, err := uc.ListEventTickets(context.Background(), 5, 99)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
}

func TestTicketUsecase_ListMyTickets(t *testing.T) {
	tickets, products, users, sink := newTicketMocks()
	uc := usecase.NewTicketUsecase(tickets, products, users, sink, false)

	tickets.On("ListByUserID", mock.Anything, int64(2)).
		Return([]model.Ticket{{ID: 1}, {ID: 2}}, nil)

	out, err := uc.ListMyTickets(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(out))
}
