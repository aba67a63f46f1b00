package handler

import (
	"net/http"

	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ログインスタブのHTTP。
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type LoginRequest struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	SellerID   string `json:"seller_id"`
	CustomerID string `json:"customer_id"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/auth/login", h.login)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Name:       req.Name,
		Role:       req.Role,
		SellerID:   req.SellerID,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
