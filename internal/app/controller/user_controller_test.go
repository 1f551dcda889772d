package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seonkim/beanshop-backend/config"
	"github.com/seonkim/beanshop-backend/internal/app/model"
	"github.com/seonkim/beanshop-backend/internal/app/repository"
	"github.com/seonkim/beanshop-backend/internal/app/service"
	"github.com/seonkim/beanshop-backend/internal/db"
	"github.com/seonkim/beanshop-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	userService := service.NewUserService(userRepo, "test-secret", time.Hour, 2*time.Hour)

	jwtConfig := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 2 * time.Hour,
	}
	cookieConfig := &config.CookieConfig{Secure: false}

	userController := NewUserController(userService, jwtConfig, cookieConfig)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/users", userController.Register)
	router.POST("/users/login", userController.Login)
	router.POST("/users/logout", userController.Logout)
	router.DELETE("/users", userController.Delete)

	return router, testDB
}

func registerTestUser(t *testing.T, router *gin.Engine, email string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{
		"name":     "홍길동",
		"email":    email,
		"password": "password123",
		"address":  "서울시 종로구 세종대로 1",
	})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestUserController_Register_Success(t *testing.T) {
	router, _ := setupUserControllerTest(t)

	w := registerTestUser(t, router, "hong@example.com")

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "201-CREATED", response["resultCode"])

	data := response["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "hong@example.com", user["email"])
	assert.Equal(t, "USER", user["role"])
	// 비밀번호는 응답에 노출되지 않는다
	_, exposed := user["password"]
	assert.False(t, exposed)

	token := data["token"].(map[string]interface{})
	assert.NotEmpty(t, token["access"])
	assert.NotEmpty(t, token["refresh"])

	// 인증 쿠키 두 개가 모두 설정된다
	cookies := w.Result().Cookies()
	access := cookieByName(cookies, middleware.AccessTokenCookie)
	refresh := cookieByName(cookies, middleware.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
}

func TestUserController_Register_WithRole(t *testing.T) {
	router, testDB := setupUserControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"name":     "관리자",
		"email":    "admin@example.com",
		"password": "password123",
		"role":     "ADMIN",
	})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "ADMIN", user["role"])

	// 요청한 권한 그대로 저장된다
	var saved model.User
	require.NoError(t, testDB.Where("email = ?", "admin@example.com").First(&saved).Error)
	assert.Equal(t, model.RoleAdmin, saved.Role)
}

func TestUserController_Register_RejectsUnknownRole(t *testing.T) {
	router, testDB := setupUserControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"name":     "홍길동",
		"email":    "hong@example.com",
		"password": "password123",
		"role":     "SUPERUSER",
	})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, testDB.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUserController_Register_DuplicateEmail(t *testing.T) {
	router, testDB := setupUserControllerTest(t)

	registerTestUser(t, router, "dup@example.com")
	w := registerTestUser(t, router, "dup@example.com")

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "409-EMAIL-EXISTS", response["resultCode"])
	assert.Equal(t, "이미 존재하는 이메일입니다", response["msg"])

	var count int64
	require.NoError(t, testDB.Model(&model.User{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserController_Register_InvalidBody(t *testing.T) {
	router, _ := setupUserControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"name":     "홍길동",
		"email":    "not-an-email",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserController_Login_Success(t *testing.T) {
	router, _ := setupUserControllerTest(t)

	registerTestUser(t, router, "hong@example.com")

	body, _ := json.Marshal(gin.H{"email": "hong@example.com", "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "200-OK", response["resultCode"])
	assert.NotNil(t, cookieByName(w.Result().Cookies(), middleware.AccessTokenCookie))
}

func TestUserController_Login_WrongPassword(t *testing.T) {
	router, _ := setupUserControllerTest(t)

	registerTestUser(t, router, "hong@example.com")

	body, _ := json.Marshal(gin.H{"email": "hong@example.com", "password": "wrong-password"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "401-UNAUTHORIZED", response["resultCode"])
	assert.Equal(t, "비밀번호가 일치하지 않습니다", response["msg"])
	assert.Nil(t, cookieByName(w.Result().Cookies(), middleware.AccessTokenCookie))
}

func TestUserController_Login_UnknownEmail(t *testing.T) {
	router, _ := setupUserControllerTest(t)

	body, _ := json.Marshal(gin.H{"email": "nobody@example.com", "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserController_Logout_ClearsCookies(t *testing.T) {
	router, _ := setupUserControllerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "200-LOGOUT", response["resultCode"])

	access := cookieByName(w.Result().Cookies(), middleware.AccessTokenCookie)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Negative(t, access.MaxAge)
}

func TestUserController_Delete(t *testing.T) {
	router, _ := setupUserControllerTest(t)

	registerTestUser(t, router, "gone@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/users?email=gone@example.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "200-DELETED", response["resultCode"])

	// 이미 삭제된 계정은 404
	req = httptest.NewRequest(http.MethodDelete, "/users?email=gone@example.com", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
