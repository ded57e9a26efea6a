package http

import (
	"errors"
	"net/http"

	"sceneyard/internal/repo/persistent"
	"sceneyard/internal/usecase"
	"sceneyard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
	logger             *logger.Logger
}

func NewInteractionHandler(interactionUseCase usecase.InteractionUseCase, logger *logger.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		logger:             logger,
	}
}

// ToggleLike godoc
// @Summary      Toggle template like
// @Description  Likes the template if not liked, removes the like otherwise
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Success      200  {object}  usecase.ToggleLikeResult
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /templates/{id}/like [post]
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	templateID := c.Param("id")
	userID := c.GetString("user_id")

	result, err := h.interactionUseCase.ToggleLike(c.Request.Context(), userID, templateID)
	if err != nil {
		if errors.Is(err, persistent.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		h.logger.Error("Failed to toggle like: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": result.Liked, "likes_count": result.NewCount})
}

// IsLiked godoc
// @Summary      Liked state for the current user
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /templates/{id}/liked [get]
func (h *InteractionHandler) IsLiked(c *gin.Context) {
	templateID := c.Param("id")
	userID := c.GetString("user_id")

	liked, err := h.interactionUseCase.IsLiked(userID, templateID)
	if err != nil {
		h.logger.Error("Failed to check like status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check like status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template_id": templateID, "liked": liked})
}

// GetLikeCount godoc
// @Summary      Like count for a template
// @Tags         interactions
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /templates/{id}/likes [get]
func (h *InteractionHandler) GetLikeCount(c *gin.Context) {
	templateID := c.Param("id")

	count, err := h.interactionUseCase.GetLikeCount(c.Request.Context(), templateID)
	if err != nil {
		h.logger.Error("Failed to get like count: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get like count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template_id": templateID, "likes_count": count})
}

// GetLikedTemplates godoc
// @Summary      Templates liked by the current user
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /templates/liked [get]
func (h *InteractionHandler) GetLikedTemplates(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, offset := parsePagination(c, 20)

	templates, err := h.interactionUseCase.GetLikedTemplates(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get liked templates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get liked templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates, "count": len(templates)})
}
