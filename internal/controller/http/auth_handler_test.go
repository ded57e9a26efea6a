package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sceneyard/internal/entity"
	"sceneyard/internal/usecase"
	"sceneyard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) LoginURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAuthUseCase) HandleCallback(ctx context.Context, code string) (*entity.User, string, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetUser(userID string) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func TestGoogleLogin_RedirectsWithState(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	logger := logger.New()
	handler := NewAuthHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/auth/google/login", handler.GoogleLogin)

	mockUseCase.On("LoginURL", mock.AnythingOfType("string")).
		Return("https://accounts.google.com/o/oauth2/auth?state=x")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/google/login", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	cookies := w.Result().Cookies()
	var stateCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == stateCookieName {
			stateCookie = cookie
		}
	}
	assert.NotNil(t, stateCookie)
	assert.NotEmpty(t, stateCookie.Value)

	mockUseCase.AssertExpectations(t)
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	logger := logger.New()
	handler := NewAuthHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/auth/google/callback", handler.GoogleCallback)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/google/callback?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "HandleCallback")
}

func TestGoogleCallback_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	logger := logger.New()
	handler := NewAuthHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/auth/google/callback", handler.GoogleCallback)

	mockUser := &entity.User{ID: "user-1", Email: "jamie@example.com", Role: entity.RoleUser}
	mockUseCase.On("HandleCallback", mock.Anything, "code-123").Return(mockUser, "jwt-token", nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/google/callback?code=code-123&state=expected", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "expected"})

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "jwt-token", response["token"])

	mockUseCase.AssertExpectations(t)
}

func TestMe_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	logger := logger.New()
	handler := NewAuthHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/auth/me", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.Me(c)
	})

	mockUser := &entity.User{ID: "user-1", Email: "jamie@example.com", Role: entity.RoleUser}
	mockUseCase.On("GetUser", "user-1").Return(mockUser, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/me", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "user-1", response["id"])

	mockUseCase.AssertExpectations(t)
}
