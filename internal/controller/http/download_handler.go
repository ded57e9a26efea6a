package http

import (
	"errors"
	"net/http"

	"sceneyard/internal/repo/persistent"
	"sceneyard/internal/usecase"
	"sceneyard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type DownloadHandler struct {
	downloadUseCase usecase.DownloadUseCase
	logger          *logger.Logger
}

func NewDownloadHandler(downloadUseCase usecase.DownloadUseCase, logger *logger.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloadUseCase: downloadUseCase,
		logger:          logger,
	}
}

type RecordDownloadRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
}

// RecordDownload godoc
// @Summary      Download a template
// @Description  Debits the credit cost and returns a streaming URL. Retrying
// @Description  with the same idempotency key returns the original result.
// @Tags         downloads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Param        request body RecordDownloadRequest true "Idempotency key"
// @Success      200  {object}  entity.DownloadResult
// @Failure      400  {object}  map[string]string
// @Failure      402  {object}  entity.DownloadResult
// @Failure      404  {object}  map[string]string
// @Router       /templates/{id}/download [post]
func (h *DownloadHandler) RecordDownload(c *gin.Context) {
	templateID := c.Param("id")
	userID := c.GetString("user_id")

	var req RecordDownloadRequest
	// Body is optional; the key may arrive via header instead.
	_ = c.ShouldBindJSON(&req)
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("X-Idempotency-Key")
	}
	if req.IdempotencyKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency key is required"})
		return
	}

	result, err := h.downloadUseCase.RecordDownload(userID, templateID, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, persistent.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		h.logger.Error("Failed to record download: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record download"})
		return
	}

	if !result.Success {
		if result.Error == "Insufficient credits" {
			c.JSON(http.StatusPaymentRequired, result)
			return
		}
		c.JSON(http.StatusBadRequest, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHistory godoc
// @Summary      Download history for the current user
// @Tags         downloads
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /downloads [get]
func (h *DownloadHandler) GetHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, offset := parsePagination(c, 50)

	downloads, err := h.downloadUseCase.GetHistory(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get download history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get download history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloads": downloads, "count": len(downloads)})
}

// StreamFile godoc
// @Summary      Stream a purchased template zip
// @Description  Same-origin proxy in front of object storage
// @Tags         downloads
// @Produce      application/zip
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Success      200
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /downloads/{id}/file [get]
func (h *DownloadHandler) StreamFile(c *gin.Context) {
	templateID := c.Param("id")
	userID := c.GetString("user_id")

	body, contentType, size, err := h.downloadUseCase.StreamTemplateFile(userID, templateID)
	if err != nil {
		if errors.Is(err, persistent.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		if err.Error() == "download not purchased" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Download not purchased"})
			return
		}
		h.logger.Error("Failed to stream template file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stream file"})
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/zip"
	}
	c.DataFromReader(http.StatusOK, size, contentType, body, nil)
}
