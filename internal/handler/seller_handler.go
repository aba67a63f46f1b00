package handler

import (
	"net/http"

	"soko/internal/config"
	"soko/internal/middleware"
	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 出品者ディレクトリとサブスクリプション。
type SellerHandler struct {
	uc *usecase.SellerUsecase
}

// DI
func NewSellerHandler(uc *usecase.SellerUsecase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

type UpdateSubscriptionRequest struct {
	Tier string `json:"tier"`
}

func (h *SellerHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/api/sellers", h.list)
	e.GET("/api/sellers/:id", h.detail)
	e.GET("/api/subscriptions", h.listPlans)

	g := e.Group("/api/seller")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.SellerRoleGuard())

	g.GET("/summary", h.summary)
	g.PUT("/subscription", h.updateSubscription)
}

func (h *SellerHandler) list(c echo.Context) error {
	out, err := h.uc.ListSellers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) detail(c echo.Context) error {
	out, err := h.uc.GetSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) listPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.ListPlans())
}

func (h *SellerHandler) summary(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	out, err := h.uc.GetSummary(c.Request().Context(), sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) updateSubscription(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.UpdateSubscription(c.Request().Context(), sellerID, req.Tier)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
