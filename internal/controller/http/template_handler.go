package http

import (
	"errors"
	"net/http"
	"strconv"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/internal/usecase"
	"sceneyard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateUseCase usecase.TemplateUseCase
	logger          *logger.Logger
}

func NewTemplateHandler(templateUseCase usecase.TemplateUseCase, logger *logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateUseCase: templateUseCase,
		logger:          logger,
	}
}

type templateResponse struct {
	*entity.Template
	PreviewURL   string `json:"preview_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func (h *TemplateHandler) toResponse(t *entity.Template) templateResponse {
	return templateResponse{
		Template:     t,
		PreviewURL:   h.templateUseCase.ResolveAssetURL(t.PreviewAsset),
		ThumbnailURL: h.templateUseCase.ResolveAssetURL(t.ThumbnailAsset),
	}
}

func (h *TemplateHandler) toResponses(templates []*entity.Template) []templateResponse {
	responses := make([]templateResponse, len(templates))
	for i, t := range templates {
		responses[i] = h.toResponse(t)
	}
	return responses
}

// ListTemplates godoc
// @Summary      List templates
// @Description  Published templates with pagination and filters
// @Tags         templates
// @Produce      json
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Param        orientation query string false "horizontal or vertical"
// @Param        category query string false "Category slug"
// @Param        featured query bool false "Featured only"
// @Success      200  {object}  map[string]interface{}
// @Router       /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	limit, offset := parsePagination(c, 20)

	params := persistent.TemplateListParams{
		Limit:         limit,
		Offset:        offset,
		Orientation:   c.Query("orientation"),
		CategorySlug:  c.Query("category"),
		FeaturedOnly:  c.Query("featured") == "true",
		PublishedOnly: true,
	}

	templates, total, err := h.templateUseCase.ListTemplates(params)
	if err != nil {
		h.logger.Error("Failed to list templates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": h.toResponses(templates),
		"total":     total,
	})
}

// GetTemplate godoc
// @Summary      Template detail
// @Tags         templates
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	template, err := h.templateUseCase.GetTemplate(c.Param("id"))
	if err != nil {
		if errors.Is(err, persistent.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		h.logger.Error("Failed to get template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get template"})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(template))
}

// ListCategories godoc
// @Summary      List categories
// @Tags         templates
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /categories [get]
func (h *TemplateHandler) ListCategories(c *gin.Context) {
	categories, err := h.templateUseCase.ListCategories()
	if err != nil {
		h.logger.Error("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func parsePagination(c *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
