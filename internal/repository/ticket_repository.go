package repository

import (
	"context"
	"time"

	"uniket/internal/domain/model"
)

type TicketRepository interface {
	FindByID(ctx context.Context, ticketID int64) (model.Ticket, error)

	//QRコードは完全一致でのみ照合する
	FindByQRCode(ctx context.Context, qrCode string) (model.Ticket, error)

	ListByProductID(ctx context.Context, productID int64) ([]model.Ticket, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Ticket, error)

	CreateBatch(ctx context.Context, tickets []model.Ticket) ([]model.Ticket, error)
	UpdateStatus(ctx context.Context, ticketID int64, status model.TicketStatus, usedAt *time.Time) error
}
