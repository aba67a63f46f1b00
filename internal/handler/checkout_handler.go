package handler

import (
	"net/http"

	"soko/internal/config"
	"soko/internal/middleware"
	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CardRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

type CheckoutRequest struct {
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	County        string      `json:"county"`
	PostalCode    string      `json:"postal_code"`
	PaymentMethod string      `json:"payment_method"`
	MpesaPhone    string      `json:"mpesa_phone"`
	Card          CardRequest `json:"card"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/checkout")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.checkout)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	customerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), customerID, usecase.CheckoutInput{
		Shipping: usecase.ShippingInfo{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			County:     req.County,
			PostalCode: req.PostalCode,
		},
		PaymentMethod: req.PaymentMethod,
		MpesaPhone:    req.MpesaPhone,
		Card: usecase.CardDetails{
			Number: req.Card.Number,
			Name:   req.Card.Name,
			Expiry: req.Card.Expiry,
			CVC:    req.Card.CVC,
		},
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
