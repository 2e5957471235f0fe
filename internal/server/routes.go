package server

import (
	"uniket/internal/config"
	"uniket/internal/handler"

	"github.com/labstack/echo/v4"
)

// 全ハンドラをまとめて受け取る
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Order        *handler.OrderHandler
	Ticket       *handler.TicketHandler
	Bid          *handler.BidHandler
	Wallet       *handler.WalletHandler
	Notification *handler.NotificationHandler
	Review       *handler.ReviewHandler
	Fraud        *handler.FraudHandler
	Audit        *handler.AuditHandler
	Realtime     *handler.RealtimeHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Ticket.RegisterRoutes(e, cfg)
	h.Bid.RegisterRoutes(e, cfg)
	h.Wallet.RegisterRoutes(e, cfg)
	h.Notification.RegisterRoutes(e, cfg)
	h.Review.RegisterRoutes(e, cfg)
	h.Fraud.RegisterRoutes(e, cfg)
	h.Audit.RegisterRoutes(e, cfg)
	h.Realtime.RegisterRoutes(e, cfg)
}
