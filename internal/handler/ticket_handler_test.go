package handler

import (
	"context"
	"net/http"
	"testing"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"
	"uniket/internal/usecase"

	"github.com/stretchr/testify/assert"
)

type stubTicketRepo struct {
	repo.TicketRepository
	tk model.Ticket
}

func (s stubTicketRepo) FindByQRCode(ctx context.Context, qrCode string) (model.Ticket, error) {
	if qrCode == s.tk.QRCode {
		return s.tk, nil
	}
	return model.Ticket{}, repo.ErrNotFound
}

type stubProductRepo struct {
	repo.ProductRepository
	p model.Product
}

func (s stubProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	return s.p, nil
}

type stubUserRepo struct{ repo.UserRepository }

func (stubUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	return &model.User{ID: userID, Name: "Hanako"}, nil
}

func TestTicketHandler_Verify_BindsCamelCaseQRCode(t *testing.T) {
	tickets := stubTicketRepo{tk: model.Ticket{
		ID: 1, ProductID: 10, UserID: 2, QRCode: "QR123", Status: model.TicketStatusValid,
	}}
	products := stubProductRepo{p: model.Product{ID: 10, VendorID: 5, EventName: "Summer Live"}}
	uc := usecase.NewTicketUsecase(tickets, products, stubUserRepo{}, stubSink{}, false)
	h := NewTicketHandler(uc)

	rec, c := jsonRequest(http.MethodPost, "/tickets/verify", `{"qrCode":"QR123"}`)
	c.Set("user_id", int64(5))

	err := h.verify(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Ticket verified successfully"`)
	assert.Contains(t, rec.Body.String(), `"isValid":true`)
}
