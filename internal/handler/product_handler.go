package handler

import (
	"encoding/json"
	"net/http"

	"soko/internal/config"
	"soko/internal/middleware"
	"soko/internal/usecase"

	"github.com/labstack/echo/v4"
)

// spec上のエラー形（404は {"message": "Product not found"}）
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//500
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// /api/products のHTTP
type ProductHandler struct {
	uc        *usecase.ProductUsecase
	uploadDir string
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, uploadDir string) *ProductHandler {
	return &ProductHandler{uc: uc, uploadDir: uploadDir}
}

// 参照は公開、変更は出品者のみ。
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/api/products", h.list)
	e.GET("/api/products/:id", h.detail)

	g := e.Group("/api/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.SellerRoleGuard())

	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Category: c.QueryParam("category"),
		SellerID: c.QueryParam("seller_id"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

// multipartの productData 部のJSON
type productDataRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Price          int64  `json:"price"`
	Category       string `json:"category"`
	Stock          int64  `json:"stock"`
	DeliveryOption string `json:"deliveryOption"`
}

// productData＋任意のimageを受けてProductInputを組む。
// 画像が不正ならストアに触る前に400で返す。
func (h *ProductHandler) bindProductInput(c echo.Context) (usecase.ProductInput, error) {
	raw := c.FormValue("productData")
	if raw == "" {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "Invalid product data")
	}

	var req productDataRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return usecase.ProductInput{}, err
	}

	imagePath, err := saveUploadedImage(c, h.uploadDir)
	if err != nil {
		return usecase.ProductInput{}, err
	}

	return usecase.ProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		Stock:          req.Stock,
		DeliveryOption: req.DeliveryOption,
		Image:          imagePath,
	}, nil
}

func (h *ProductHandler) create(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	in, err := h.bindProductInput(c)
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok {
			return c.JSON(he.Status, ErrorResponse{Message: he.Message})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid product data", Error: err.Error()})
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), sellerID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	in, err := h.bindProductInput(c)
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok {
			return c.JSON(he.Status, ErrorResponse{Message: he.Message})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid product data", Error: err.Error()})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), sellerID, c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) delete(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), sellerID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
