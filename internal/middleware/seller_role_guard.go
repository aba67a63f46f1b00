package middleware

import (
	"net/http"

	"soko/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// SellerRoleGuard は role=seller 以外を403にする。
// AuthJWT の後段で使う。
func SellerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role != string(model.RoleSeller) {
				return c.JSON(http.StatusForbidden, errorJSON("seller role required"))
			}
			return next(c)
		}
	}
}
