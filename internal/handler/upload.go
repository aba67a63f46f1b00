package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"soko/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// 画像は2MiBまで
const maxImageBytes = 2 * 1024 * 1024

// saveUploadedImage は "image" パートを検証して保存する。
// ファイルが無ければ空文字を返す（プレースホルダは上の層で決める）。
// 不正なら保存せずに HTTPError を返す。
func saveUploadedImage(c echo.Context, uploadDir string) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// 画像なしは正常
		return "", nil
	}

	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", usecase.NewHTTPError(http.StatusBadRequest, "only image files are allowed")
	}
	if fh.Size > maxImageBytes {
		return "", usecase.NewHTTPError(http.StatusBadRequest, "image too large (max 2MB)")
	}

	src, err := fh.Open()
	if err != nil {
		return "", usecase.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	defer src.Close()

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}
