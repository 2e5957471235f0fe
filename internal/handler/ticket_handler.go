package handler

import (
	"net/http"

	"uniket/internal/config"
	"uniket/internal/middleware"
	"uniket/internal/usecase"

	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	uc *usecase.TicketUsecase
}

func NewTicketHandler(uc *usecase.TicketUsecase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/tickets")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.listMine)

	//検証と消込は出品者側の操作
	v := e.Group("/tickets")
	v.Use(middleware.AuthJWT(cfg))
	v.Use(middleware.VendorRoleGuard())
	v.POST("/verify", h.verify)
	v.POST("/:ticketId/use", h.markUsed)
	v.GET("/event/:productId", h.listEvent)
}

func (h *TicketHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyTickets(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type ticketVerifyRequest struct {
	QRCode string `json:"qrCode"`
}

func (h *TicketHandler) verify(c echo.Context) error {
	vendorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ticketVerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Verify(c.Request().Context(), vendorID, req.QRCode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) markUsed(c echo.Context) error {
	vendorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramInt64(c, "ticketId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.MarkUsed(c.Request().Context(), vendorID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) listEvent(c echo.Context) error {
	vendorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := paramInt64(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListEventTickets(c.Request().Context(), vendorID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
