package http

import (
	"errors"
	"net/http"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/internal/usecase"
	"sceneyard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUseCase usecase.ContactUseCase
	logger         *logger.Logger
}

func NewContactHandler(contactUseCase usecase.ContactUseCase, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
		logger:         logger,
	}
}

// Submit godoc
// @Summary      Submit a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body usecase.SubmitContactInput true "Contact message"
// @Success      201  {object}  entity.ContactMessage
// @Failure      400  {object}  map[string]string
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var input usecase.SubmitContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message, err := h.contactUseCase.Submit(input)
	if err != nil {
		// Validation failures carry user-facing messages; storage failures
		// are logged in the usecase.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// ListMessages godoc
// @Summary      List contact messages (admin)
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "unread, read or replied"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/contact-messages [get]
func (h *ContactHandler) ListMessages(c *gin.Context) {
	limit, offset := parsePagination(c, 50)

	messages, total, err := h.contactUseCase.List(c.Query("status"), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list contact messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": total})
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateMessageStatus godoc
// @Summary      Update contact message status (admin)
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Message ID"
// @Param        request body UpdateMessageStatusRequest true "New status"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contact-messages/{id}/status [put]
func (h *ContactHandler) UpdateMessageStatus(c *gin.Context) {
	var req UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.contactUseCase.UpdateStatus(c.Param("id"), entity.ContactStatus(req.Status))
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// DeleteMessage godoc
// @Summary      Delete a contact message (admin)
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Message ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contact-messages/{id} [delete]
func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	if err := h.contactUseCase.Delete(c.Param("id")); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		h.logger.Error("Failed to delete contact message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
