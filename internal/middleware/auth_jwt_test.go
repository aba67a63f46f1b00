package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"soko/internal/config"
	"soko/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "unit-test-secret"

func testConfig() config.Config {
	return config.Config{JWTSecret: testSecret}
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  "user-1",
		"role": "customer",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

// AuthJWTを通した後にcontextへ入った値を返すハンドラ
func echoThrough(authz string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.AuthJWT(testConfig())(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(middleware.CtxUserIDKey).(string)+"/"+c.Get(middleware.CtxUserRoleKey).(string))
	})
	err := h(c)
	return rec, err
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims())

	rec, err := echoThrough("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1/customer", rec.Body.String())
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, err := echoThrough("")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims())

	rec, err := echoThrough("Basic " + token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.SigningMethodHS256, validClaims())

	rec, err := echoThrough("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// HS256以外の署名方式は拒否する
func TestAuthJWT_WrongSigningMethod(t *testing.T) {
	token := signToken(t, testSecret, jwt.SigningMethodHS512, validClaims())

	rec, err := echoThrough("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, jwt.SigningMethodHS256, claims)

	rec, err := echoThrough("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingSubClaim(t *testing.T) {
	claims := validClaims()
	delete(claims, "sub")
	token := signToken(t, testSecret, jwt.SigningMethodHS256, claims)

	rec, err := echoThrough("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSellerRoleGuard_AllowsSeller(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserRoleKey, "seller")

	h := middleware.SellerRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSellerRoleGuard_RejectsCustomer(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserRoleKey, "customer")

	h := middleware.SellerRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSellerRoleGuard_RejectsMissingRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.SellerRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
