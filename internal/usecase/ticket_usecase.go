package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"uniket/internal/domain/model"
	"uniket/internal/notify"
	repo "uniket/internal/repository"
)

type TicketUsecase struct {
	tickets  repo.TicketRepository
	products repo.ProductRepository
	users    repo.UserRepository
	sink     notify.Sink

	//使用済みチケットの再スキャンを拒否するか。元の挙動に合わせてデフォルトoff
	strictReuseCheck bool
}

func NewTicketUsecase(
	tickets repo.TicketRepository,
	products repo.ProductRepository,
	users repo.UserRepository,
	sink notify.Sink,
	strictReuseCheck bool,
) *TicketUsecase {
	return &TicketUsecase{
		tickets:          tickets,
		products:         products,
		users:            users,
		sink:             sink,
		strictReuseCheck: strictReuseCheck,
	}
}

type VerifyTicketOutput struct {
	Message       string       `json:"message"`
	IsValid       bool         `json:"isValid"`
	Ticket        model.Ticket `json:"ticket"`
	EventName     string       `json:"eventName"`
	EventDate     *time.Time   `json:"eventDate,omitempty"`
	EventLocation string       `json:"eventLocation"`
	TicketType    string       `json:"ticketType"`
	UserName      string       `json:"userName"`
}

// QRコードの完全一致でチケットを照合する。
// 有効期限切れはここで読み取り契機のままEXPIREDへ倒す（バックグラウンドjobはない）
func (u *TicketUsecase) Verify(ctx context.Context, vendorID int64, qrCode string) (VerifyTicketOutput, error) {
	if vendorID <= 0 {
		return VerifyTicketOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(qrCode) == "" {
		return VerifyTicketOutput{}, NewHTTPError(http.StatusBadRequest, "qrCode required")
	}

	t, err := u.tickets.FindByQRCode(ctx, qrCode)
	if errors.Is(err, repo.ErrNotFound) {
		return VerifyTicketOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid ticket")
	}
	if err != nil {
		return VerifyTicketOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.products.FindByID(ctx, t.ProductID)
	if err != nil {
		return VerifyTicketOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//照合できるのはそのイベントの出品者だけ
	if p.VendorID != vendorID {
		return VerifyTicketOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	//期限切れは読み取り時に遅延でEXPIREDへ倒す
	if t.Status == model.TicketStatusValid && p.ValidUntil != nil && time.Now().After(*p.ValidUntil) {
		if err := u.tickets.UpdateStatus(ctx, t.ID, model.TicketStatusExpired, nil); err != nil {
			return VerifyTicketOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return VerifyTicketOutput{}, NewHTTPError(http.StatusBadRequest, "Ticket has expired")
	}

	if t.Status != model.TicketStatusValid {
		return VerifyTicketOutput{}, NewHTTPError(http.StatusBadRequest, "Ticket is "+strings.ToLower(string(t.Status)))
	}

	userName := ""
	if owner, uerr := u.users.FindByID(ctx, t.UserID); uerr == nil && owner != nil {
		userName = owner.Name
	}

	return VerifyTicketOutput{
		Message:       "Ticket verified successfully",
		IsValid:       true,
		Ticket:        t,
		EventName:     p.EventName,
		EventDate:     p.EventDate,
		EventLocation: p.EventLocation,
		TicketType:    p.TicketType,
		UserName:      userName,
	}, nil
}

// 無条件でUSEDに倒す。検証はVerify側の責務で、ここではstrictReuseCheckが
// 有効なときだけ再利用を弾く（元実装はガードなし）
func (u *TicketUsecase) MarkUsed(ctx context.Context, vendorID int64, ticketID int64) (model.Ticket, error) {
	if vendorID <= 0 {
		return model.Ticket{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if ticketID <= 0 {
		return model.Ticket{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	t, err := u.tickets.FindByID(ctx, ticketID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Ticket{}, NewHTTPError(http.StatusNotFound, "ticket not found")
	}
	if err != nil {
		return model.Ticket{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.products.FindByID(ctx, t.ProductID)
	if err != nil {
		return model.Ticket{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.VendorID != vendorID {
		return model.Ticket{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if u.strictReuseCheck && t.Status != model.TicketStatusValid {
		return model.Ticket{}, NewHTTPError(http.StatusBadRequest, "Ticket is "+strings.ToLower(string(t.Status)))
	}

	now := time.Now()
	if err := u.tickets.UpdateStatus(ctx, t.ID, model.TicketStatusUsed, &now); err != nil {
		return model.Ticket{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	t.Status = model.TicketStatusUsed
	t.UsedAt = &now

	u.sink.BestEffortNotify(ctx, notify.Input{
		UserID:  t.UserID,
		Type:    model.NotificationTypeTicket,
		Message: fmt.Sprintf("Ticket %s was scanned for entry", t.TicketNumber),
	})

	return t, nil
}

// イベントのチケット一覧。所有チェックと存在チェックは区別しない
// （存在しないイベントIDでも403を返す元の契約を保つ）
func (u *TicketUsecase) ListEventTickets(ctx context.Context, vendorID int64, productID int64) ([]model.Ticket, error) {
	if vendorID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.VendorID != vendorID {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	items, err := u.tickets.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *TicketUsecase) ListMyTickets(ctx context.Context, userID int64) ([]model.Ticket, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.tickets.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
