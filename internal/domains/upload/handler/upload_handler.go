package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"authors-api/internal/infrastructure/storage"
	"authors-api/internal/shared/response"
	"authors-api/pkg/logger"
)

// UploadHandler serves the generic file upload endpoint.
type UploadHandler struct {
	storage storage.Storage
}

func NewUploadHandler(storage storage.Storage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload handles POST /file-upload (multipart: file). The stored name
// keeps the original filename as a suffix.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("failed to open upload", err)
		response.InternalServerError(c, "internal server error")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("failed to read upload", err)
		response.InternalServerError(c, "internal server error")
		return
	}

	location, err := h.storage.Save(
		c.Request.Context(),
		fileHeader.Filename,
		data,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		logger.Error("failed to store upload", err)
		response.InternalServerError(c, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": location})
}
