package handler

import (
	"saturnalia/internal/infrastructure/storage"
	"saturnalia/pkg/errors"
	"saturnalia/pkg/response"

	"github.com/labstack/echo/v4"
)

var fileHandler *FileHandler

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = &FileHandler{
		storageClient: storageClient,
	}
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

// UploadProductImage stores an uploaded image and returns its public URL for
// use as a product image reference.
func (h *FileHandler) UploadProductImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Image file is required", err))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	url, err := h.storageClient.UploadImage(c.Request().Context(), src, file.Header.Get("Content-Type"))
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upload image", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}
