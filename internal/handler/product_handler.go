package handler

import (
	"net/http"
	"strconv"
	"time"

	"uniket/internal/config"
	"uniket/internal/middleware"
	"uniket/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products の公開API + 出品者の商品管理
type ProductHandler struct {
	uc    *usecase.ProductUsecase
	cache *middleware.ResponseCache
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, cache *middleware.ResponseCache) *ProductHandler {
	return &ProductHandler{uc: uc, cache: cache}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//公開側は短いTTLでキャッシュする
	e.GET("/products", h.list, h.cache.Middleware())
	e.GET("/products/:id", h.detail, h.cache.Middleware())

	g := e.Group("/vendor/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.VendorRoleGuard())

	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	q := c.QueryParam("q")
	sort := c.QueryParam("sort")

	var minPrice *int64
	if v := c.QueryParam("min_price"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		minPrice = &x
	}

	var maxPrice *int64
	if v := c.QueryParam("max_price"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		maxPrice = &x
	}

	out, err := h.uc.ListPublicProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:     page,
		Limit:    limit,
		Q:        q,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     sort,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

type productCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	ImagePath   string `json:"image_path"`

	EnableBidding bool       `json:"enable_bidding"`
	StartingBid   int64      `json:"starting_bid"`
	BidEndDate    *time.Time `json:"bid_end_date"`

	IsTicket      bool       `json:"is_ticket"`
	EventName     string     `json:"event_name"`
	EventDate     *time.Time `json:"event_date"`
	EventLocation string     `json:"event_location"`
	TicketType    string     `json:"ticket_type"`
	ValidUntil    *time.Time `json:"valid_until"`
}

func (h *ProductHandler) create(c echo.Context) error {
	vendorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req productCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), vendorID, usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		ImagePath:     req.ImagePath,
		EnableBidding: req.EnableBidding,
		StartingBid:   req.StartingBid,
		BidEndDate:    req.BidEndDate,
		IsTicket:      req.IsTicket,
		EventName:     req.EventName,
		EventDate:     req.EventDate,
		EventLocation: req.EventLocation,
		TicketType:    req.TicketType,
		ValidUntil:    req.ValidUntil,
	})
	if err != nil {
		return writeError(c, err)
	}

	//一覧キャッシュを無効化
	h.cache.Flush()

	return c.JSON(http.StatusCreated, p)
}

type productUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Stock       *int64  `json:"stock"`
	IsActive    *bool   `json:"is_active"`
	ImagePath   *string `json:"image_path"`

	EnableBidding *bool      `json:"enable_bidding"`
	StartingBid   *int64     `json:"starting_bid"`
	BidEndDate    *time.Time `json:"bid_end_date"`

	ValidUntil *time.Time `json:"valid_until"`
}

func (h *ProductHandler) update(c echo.Context) error {
	vendorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), vendorID, id, usecase.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		IsActive:      req.IsActive,
		ImagePath:     req.ImagePath,
		EnableBidding: req.EnableBidding,
		StartingBid:   req.StartingBid,
		BidEndDate:    req.BidEndDate,
		ValidUntil:    req.ValidUntil,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.cache.Flush()

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) remove(c echo.Context) error {
	vendorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), vendorID, id); err != nil {
		return writeError(c, err)
	}

	h.cache.Flush()

	return c.NoContent(http.StatusNoContent)
}
