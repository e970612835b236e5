package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Dir is where uploaded images land; main wires it from config.
var Dir = "public/assets/images"

const maxUploadFiles = 10

// Images accepts multipart image uploads and returns their public URLs.
// POST /upload
func Images(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no images provided (field: images)"})
	}
	if len(files) > maxUploadFiles {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("too many files (max %d)", maxUploadFiles)})
	}

	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to prepare upload directory"})
	}

	urls := []string{}
	for _, fh := range files {
		url, err := saveImage(fh)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		urls = append(urls, url)
	}

	return c.JSON(http.StatusOK, echo.Map{"urls": urls})
}

func saveImage(fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported file type %q, only images are allowed", contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file")
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to store uploaded file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to store uploaded file")
	}

	return "/assets/images/" + name, nil
}
