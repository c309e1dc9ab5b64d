package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"locality_dev_v1_202609/internal/middleware"
	"locality_dev_v1_202609/internal/model"
	"locality_dev_v1_202609/internal/repository"
	"locality_dev_v1_202609/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthTestRouter(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	authService := service.NewAuthService(repository.NewUserRepository(db))
	ctrl := NewAuthController(authService)

	r := gin.New()
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", ctrl.Signup)
		auth.POST("/signin", ctrl.Signin)
		auth.POST("/refresh", ctrl.RefreshToken)
		auth.GET("/profile", middleware.JWTAuth(), ctrl.GetProfile)
		auth.PUT("/password", middleware.JWTAuth(), ctrl.UpdatePassword)
	}
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_SignupSigninFlow(t *testing.T) {
	r := setupAuthTestRouter(t)

	// 注册
	w := postJSON(t, r, "/api/auth/signup", gin.H{
		"email":      "Alice@Example.com",
		"password":   "secret123",
		"first_name": "Alice",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("注册状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	// 重复邮箱 (大小写归一后撞上)
	w = postJSON(t, r, "/api/auth/signup", gin.H{
		"email":    "alice@example.com",
		"password": "another123",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("重复注册状态码 = %d, want 409", w.Code)
	}

	// 登录拿 Token
	w = postJSON(t, r, "/api/auth/signin", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("登录状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	var signinResp struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &signinResp); err != nil {
		t.Fatal(err)
	}
	if signinResp.Data.AccessToken == "" || signinResp.Data.RefreshToken == "" {
		t.Fatalf("登录响应缺少 Token: %s", w.Body.String())
	}

	// 错误密码
	w = postJSON(t, r, "/api/auth/signin", gin.H{
		"email":    "alice@example.com",
		"password": "wrongpass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("错误密码状态码 = %d, want 401", w.Code)
	}

	// 带 Token 取个人信息
	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signinResp.Data.AccessToken)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("取个人信息状态码 = %d, body = %s", w2.Code, w2.Body.String())
	}
	var profileResp struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &profileResp); err != nil {
		t.Fatal(err)
	}
	if profileResp.Data.Email != "alice@example.com" {
		t.Errorf("个人信息邮箱 = %q", profileResp.Data.Email)
	}

	// 刷新 Token
	w = postJSON(t, r, "/api/auth/refresh", gin.H{
		"refresh_token": signinResp.Data.RefreshToken,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("刷新状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	// Access Token 不能当 Refresh Token 用
	w = postJSON(t, r, "/api/auth/refresh", gin.H{
		"refresh_token": signinResp.Data.AccessToken,
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("用 access token 刷新状态码 = %d, want 401", w.Code)
	}
}

func TestAuth_UpdatePassword(t *testing.T) {
	r := setupAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/signup", gin.H{
		"email":    "carol@example.com",
		"password": "oldsecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("注册状态码 = %d, body = %s", w.Code, w.Body.String())
	}
	w = postJSON(t, r, "/api/auth/signin", gin.H{
		"email":    "carol@example.com",
		"password": "oldsecret",
	})
	var signinResp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &signinResp); err != nil {
		t.Fatal(err)
	}

	putJSON := func(body gin.H, token string) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest("PUT", "/api/auth/password", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// 当前密码错误
	w = putJSON(gin.H{"current_password": "wrongpass", "new_password": "newsecret"}, signinResp.Data.AccessToken)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("错误当前密码状态码 = %d, want 401", w.Code)
	}

	// 正常修改
	w = putJSON(gin.H{"current_password": "oldsecret", "new_password": "newsecret"}, signinResp.Data.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("修改密码状态码 = %d, body = %s", w.Code, w.Body.String())
	}

	// 旧密码失效，新密码可登录
	w = postJSON(t, r, "/api/auth/signin", gin.H{
		"email":    "carol@example.com",
		"password": "oldsecret",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("旧密码登录状态码 = %d, want 401", w.Code)
	}
	w = postJSON(t, r, "/api/auth/signin", gin.H{
		"email":    "carol@example.com",
		"password": "newsecret",
	})
	if w.Code != http.StatusOK {
		t.Errorf("新密码登录状态码 = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAuth_SignupValidation(t *testing.T) {
	r := setupAuthTestRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"缺少邮箱", gin.H{"password": "secret123"}},
		{"非法邮箱", gin.H{"email": "not-an-email", "password": "secret123"}},
		{"密码过短", gin.H{"email": "a@example.com", "password": "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/api/auth/signup", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("状态码 = %d, want 400, body = %s", w.Code, w.Body.String())
			}
		})
	}
}
