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

// AdminHandler covers the dashboard operations: template lifecycle, category
// management, user administration and asset upload presigning.
type AdminHandler struct {
	templateUseCase usecase.TemplateUseCase
	userUseCase     usecase.UserUseCase
	logger          *logger.Logger
}

func NewAdminHandler(templateUseCase usecase.TemplateUseCase, userUseCase usecase.UserUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		templateUseCase: templateUseCase,
		userUseCase:     userUseCase,
		logger:          logger,
	}
}

type assetRequest struct {
	StorageKey  string `json:"storage_key" binding:"required"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type CreateTemplateRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	CreditsCost int           `json:"credits_cost" binding:"required,min=1,max=4"`
	Orientation string        `json:"orientation" binding:"required"`
	Preview     assetRequest  `json:"preview" binding:"required"`
	Thumbnail   *assetRequest `json:"thumbnail"`
	Download    *assetRequest `json:"download"`
	CategoryIDs []string      `json:"category_ids"`
	Publish     bool          `json:"publish"`
}

// CreateTemplate godoc
// @Summary      Create a template
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTemplateRequest true "Template"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /admin/templates [post]
func (h *AdminHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.CreateTemplateInput{
		Title:       req.Title,
		Description: req.Description,
		CreditsCost: req.CreditsCost,
		Orientation: req.Orientation,
		Preview:     usecase.AssetInput(req.Preview),
		CategoryIDs: req.CategoryIDs,
		Publish:     req.Publish,
	}
	if req.Thumbnail != nil {
		thumbnail := usecase.AssetInput(*req.Thumbnail)
		input.Thumbnail = &thumbnail
	}
	if req.Download != nil {
		download := usecase.AssetInput(*req.Download)
		input.Download = &download
	}

	template, err := h.templateUseCase.CreateTemplate(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, template)
}

type UpdateTemplateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CreditsCost *int    `json:"credits_cost"`
	Orientation *string `json:"orientation"`
	Featured    *bool   `json:"featured"`
}

// UpdateTemplate godoc
// @Summary      Partially update a template
// @Description  Only the provided fields are written
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Param        request body UpdateTemplateRequest true "Changed fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/templates/{id} [patch]
func (h *AdminHandler) UpdateTemplate(c *gin.Context) {
	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := h.templateUseCase.UpdateTemplate(c.Param("id"), usecase.UpdateTemplateInput{
		Title:       req.Title,
		Description: req.Description,
		CreditsCost: req.CreditsCost,
		Orientation: req.Orientation,
		Featured:    req.Featured,
	})
	if err != nil {
		if errors.Is(err, persistent.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, template)
}

// ListAllTemplates godoc
// @Summary      List templates including drafts (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/templates [get]
func (h *AdminHandler) ListAllTemplates(c *gin.Context) {
	limit, offset := parsePagination(c, 20)

	templates, total, err := h.templateUseCase.ListTemplates(persistent.TemplateListParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.logger.Error("Failed to list templates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates, "total": total})
}

// DeleteTemplate godoc
// @Summary      Soft-delete a template
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/templates/{id} [delete]
func (h *AdminHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateUseCase.DeleteTemplate(c.Param("id")); err != nil {
		if errors.Is(err, persistent.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		h.logger.Error("Failed to delete template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

type SetFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// SetFeatured godoc
// @Summary      Toggle the featured flag
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Param        request body SetFeaturedRequest true "Featured flag"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/templates/{id}/featured [put]
func (h *AdminHandler) SetFeatured(c *gin.Context) {
	var req SetFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.templateUseCase.SetFeatured(c.Param("id"), *req.Featured); err != nil {
		if errors.Is(err, persistent.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		h.logger.Error("Failed to set featured: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set featured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Featured flag updated"})
}

// PublishTemplate godoc
// @Summary      Publish a draft template
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/templates/{id}/publish [post]
func (h *AdminHandler) PublishTemplate(c *gin.Context) {
	if err := h.templateUseCase.PublishTemplate(c.Param("id")); err != nil {
		if errors.Is(err, persistent.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		h.logger.Error("Failed to publish template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template published"})
}

type PresignUploadRequest struct {
	Kind        string `json:"kind" binding:"required"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignUpload godoc
// @Summary      Issue a presigned PUT URL for an asset upload
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PresignUploadRequest true "Upload descriptor"
// @Success      200  {object}  usecase.PresignedUpload
// @Failure      400  {object}  map[string]string
// @Router       /admin/uploads/presign [post]
func (h *AdminHandler) PresignUpload(c *gin.Context) {
	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, err := h.templateUseCase.PresignAssetUpload(entity.AssetKind(req.Kind), req.Filename, req.ContentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, upload)
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCategoryRequest true "Category"
// @Success      201  {object}  entity.Category
// @Failure      400  {object}  map[string]string
// @Router       /admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.templateUseCase.CreateCategory(req.Name, req.Slug)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Category ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.templateUseCase.DeleteCategory(c.Param("id")); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.logger.Error("Failed to delete category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// AttachCategory godoc
// @Summary      Attach a category to a template
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Param        category_id path string true "Category ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/templates/{id}/categories/{category_id} [put]
func (h *AdminHandler) AttachCategory(c *gin.Context) {
	if err := h.templateUseCase.AttachCategory(c.Param("id"), c.Param("category_id")); err != nil {
		h.logger.Error("Failed to attach category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category attached"})
}

// DetachCategory godoc
// @Summary      Detach a category from a template
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Template ID"
// @Param        category_id path string true "Category ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/templates/{id}/categories/{category_id} [delete]
func (h *AdminHandler) DetachCategory(c *gin.Context) {
	if err := h.templateUseCase.DetachCategory(c.Param("id"), c.Param("category_id")); err != nil {
		h.logger.Error("Failed to detach category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category detached"})
}

// ListUsers godoc
// @Summary      List users (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := parsePagination(c, 50)

	users, total, err := h.userUseCase.ListUsers(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeUserRole godoc
// @Summary      Change a user's role (admin)
// @Description  Refuses to demote the last remaining admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body ChangeRoleRequest true "New role"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) ChangeUserRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.userUseCase.ChangeRole(c.Param("id"), entity.UserRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, persistent.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, persistent.ErrLastAdmin):
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot remove the last admin"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// DeleteUser godoc
// @Summary      Delete a user (admin)
// @Description  Refuses to delete the last remaining admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	err := h.userUseCase.DeleteUser(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, persistent.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, persistent.ErrLastAdmin):
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot remove the last admin"})
		default:
			h.logger.Error("Failed to delete user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
