package handler

import (
	"net/http"

	"uniket/internal/config"
	"uniket/internal/middleware"
	"uniket/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BidHandler struct {
	uc *usecase.BidUsecase
}

func NewBidHandler(uc *usecase.BidUsecase) *BidHandler {
	return &BidHandler{uc: uc}
}

func (h *BidHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/products/:productId/bids")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.place)
	g.GET("", h.listByProduct)

	b := e.Group("/bids")
	b.Use(middleware.AuthJWT(cfg))
	b.Use(middleware.VendorRoleGuard())
	b.PUT("/:id/approve", h.approve)
	b.PUT("/:id/reject", h.reject)
}

type placeBidRequest struct {
	Amount int64 `json:"amount"`
}

func (h *BidHandler) place(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := paramInt64(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Place(c.Request().Context(), userID, productID, usecase.PlaceBidInput{Amount: req.Amount})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *BidHandler) listByProduct(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := paramInt64(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListByProduct(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BidHandler) approve(c echo.Context) error {
	return h.review(c, true)
}

func (h *BidHandler) reject(c echo.Context) error {
	return h.review(c, false)
}

func (h *BidHandler) review(c echo.Context, approve bool) error {
	vendorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Review(c.Request().Context(), vendorID, id, approve)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
