package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/internal/usecase"
	"sceneyard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTemplateUseCase is a mock implementation of TemplateUseCase
type MockTemplateUseCase struct {
	mock.Mock
}

func (m *MockTemplateUseCase) GetTemplate(id string) (*entity.Template, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Template), args.Error(1)
}

func (m *MockTemplateUseCase) ListTemplates(params persistent.TemplateListParams) ([]*entity.Template, int64, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Template), args.Get(1).(int64), args.Error(2)
}

func (m *MockTemplateUseCase) ListCategories() ([]entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockTemplateUseCase) CreateTemplate(input usecase.CreateTemplateInput) (*entity.Template, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Template), args.Error(1)
}

func (m *MockTemplateUseCase) UpdateTemplate(id string, input usecase.UpdateTemplateInput) (*entity.Template, error) {
	args := m.Called(id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Template), args.Error(1)
}

func (m *MockTemplateUseCase) DeleteTemplate(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTemplateUseCase) SetFeatured(id string, featured bool) error {
	args := m.Called(id, featured)
	return args.Error(0)
}

func (m *MockTemplateUseCase) PublishTemplate(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTemplateUseCase) CreateCategory(name, slug string) (*entity.Category, error) {
	args := m.Called(name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockTemplateUseCase) DeleteCategory(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTemplateUseCase) AttachCategory(templateID, categoryID string) error {
	args := m.Called(templateID, categoryID)
	return args.Error(0)
}

func (m *MockTemplateUseCase) DetachCategory(templateID, categoryID string) error {
	args := m.Called(templateID, categoryID)
	return args.Error(0)
}

func (m *MockTemplateUseCase) PresignAssetUpload(kind entity.AssetKind, filename, contentType string) (*usecase.PresignedUpload, error) {
	args := m.Called(kind, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PresignedUpload), args.Error(1)
}

func (m *MockTemplateUseCase) ResolveAssetURL(asset *entity.Asset) string {
	args := m.Called(asset)
	return args.String(0)
}

var _ usecase.TemplateUseCase = (*MockTemplateUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestListTemplates_Success(t *testing.T) {
	mockUseCase := new(MockTemplateUseCase)
	logger := logger.New()
	handler := NewTemplateHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/templates", handler.ListTemplates)

	mockTemplates := []*entity.Template{
		{
			ID:          "template-1",
			Title:       "Neon Intro",
			CreditsCost: 2,
			Orientation: entity.OrientationHorizontal,
		},
		{
			ID:          "template-2",
			Title:       "Story Promo",
			CreditsCost: 3,
			Orientation: entity.OrientationVertical,
		},
	}

	expectedParams := persistent.TemplateListParams{
		Limit:         20,
		Offset:        0,
		PublishedOnly: true,
	}
	mockUseCase.On("ListTemplates", expectedParams).Return(mockTemplates, int64(2), nil)
	mockUseCase.On("ResolveAssetURL", mock.Anything).Return("")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/templates", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	templates := response["templates"].([]interface{})
	assert.Equal(t, 2, len(templates))
	assert.Equal(t, float64(2), response["total"])

	mockUseCase.AssertExpectations(t)
}

func TestListTemplates_Filters(t *testing.T) {
	mockUseCase := new(MockTemplateUseCase)
	logger := logger.New()
	handler := NewTemplateHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/templates", handler.ListTemplates)

	expectedParams := persistent.TemplateListParams{
		Limit:         10,
		Offset:        5,
		Orientation:   "vertical",
		CategorySlug:  "intros",
		FeaturedOnly:  true,
		PublishedOnly: true,
	}
	mockUseCase.On("ListTemplates", expectedParams).Return([]*entity.Template{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/templates?limit=10&offset=5&orientation=vertical&category=intros&featured=true", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetTemplate_Success(t *testing.T) {
	mockUseCase := new(MockTemplateUseCase)
	logger := logger.New()
	handler := NewTemplateHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/templates/:id", handler.GetTemplate)

	mockTemplate := &entity.Template{
		ID:          "template-123",
		Title:       "Ink Logo Reveal",
		CreditsCost: 4,
		Orientation: entity.OrientationHorizontal,
		PreviewAsset: &entity.Asset{
			ID:         "asset-1",
			Kind:       entity.AssetKindPreview,
			StorageKey: "templates/preview/abc.mp4",
		},
	}

	mockUseCase.On("GetTemplate", "template-123").Return(mockTemplate, nil)
	mockUseCase.On("ResolveAssetURL", mockTemplate.PreviewAsset).Return("https://cdn.example.com/templates/preview/abc.mp4")
	mockUseCase.On("ResolveAssetURL", (*entity.Asset)(nil)).Return("")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/templates/template-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "template-123", response["id"])
	assert.Equal(t, "https://cdn.example.com/templates/preview/abc.mp4", response["preview_url"])

	mockUseCase.AssertExpectations(t)
}

func TestGetTemplate_NotFound(t *testing.T) {
	mockUseCase := new(MockTemplateUseCase)
	logger := logger.New()
	handler := NewTemplateHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/templates/:id", handler.GetTemplate)

	mockUseCase.On("GetTemplate", "missing").Return(nil, persistent.ErrTemplateNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/templates/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestListCategories_Success(t *testing.T) {
	mockUseCase := new(MockTemplateUseCase)
	logger := logger.New()
	handler := NewTemplateHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/categories", handler.ListCategories)

	mockCategories := []entity.Category{
		{ID: "cat-1", Name: "Intros", Slug: "intros"},
		{ID: "cat-2", Name: "Titles", Slug: "titles"},
	}
	mockUseCase.On("ListCategories").Return(mockCategories, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/categories", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	categories := response["categories"].([]interface{})
	assert.Equal(t, 2, len(categories))

	mockUseCase.AssertExpectations(t)
}
