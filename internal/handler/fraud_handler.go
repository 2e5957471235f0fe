package handler

import (
	"net/http"

	"uniket/internal/config"
	"uniket/internal/middleware"
	"uniket/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者向けの不正検知API
type FraudHandler struct {
	uc *usecase.FraudUsecase
}

func NewFraudHandler(uc *usecase.FraudUsecase) *FraudHandler {
	return &FraudHandler{uc: uc}
}

func (h *FraudHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/fraud")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/users/:id", h.analyzeUser)
}

func (h *FraudHandler) analyzeUser(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.AnalyzeUser(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
