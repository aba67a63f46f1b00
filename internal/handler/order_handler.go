package handler

import (
	"net/http"

	"soko/internal/config"
	"soko/internal/middleware"
	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 顧客の注文参照と出品者の注文管理。
type OrderHandler struct {
	orderUC       *usecase.OrderUsecase
	sellerOrderUC *usecase.SellerOrderUsecase
}

// DI
func NewOrderHandler(orderUC *usecase.OrderUsecase, sellerOrderUC *usecase.SellerOrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, sellerOrderUC: sellerOrderUC}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.listMyOrders)
	g.GET("/:id", h.getMyOrder)

	s := e.Group("/api/seller/orders")
	s.Use(middleware.AuthJWT(cfg))
	s.Use(middleware.SellerRoleGuard())

	s.GET("", h.listSellerOrders)
	s.PATCH("/:id/status", h.updateStatus)
}

func (h *OrderHandler) listMyOrders(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	out, err := h.orderUC.ListMyOrders(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) getMyOrder(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	out, err := h.orderUC.GetMyOrderDetail(c.Request().Context(), customerID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listSellerOrders(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	out, err := h.sellerOrderUC.ListSellerOrders(c.Request().Context(), sellerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	err := h.sellerOrderUC.UpdateStatus(c.Request().Context(), sellerID, c.Param("id"), usecase.UpdateOrderStatusInput{
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
}
