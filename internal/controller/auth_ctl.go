package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"locality_dev_v1_202609/internal/api/dto"
	"locality_dev_v1_202609/internal/middleware"
	"locality_dev_v1_202609/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// ==================== 注册 / 登录 ====================

// Signup 注册
// @Summary 注册新用户
// @Tags Auth
// @Success 200 {object} dto.UserInfo
// @Router /api/auth/signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	info, err := ctrl.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(409, gin.H{"code": 409, "message": "email already registered"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "signup failed: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": info})
}

// Signin 登录
// @Summary 邮箱密码登录
// @Tags Auth
// @Success 200 {object} dto.SigninResponse
// @Router /api/auth/signin [post]
func (ctrl *AuthController) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	resp, err := ctrl.authService.Signin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"code": 401, "message": "invalid email or password"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "signin failed: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": resp})
}

// RefreshToken 刷新 Token
// @Summary 刷新 Token 对
// @Tags Auth
// @Success 200 {object} dto.RefreshTokenResponse
// @Router /api/auth/refresh [post]
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	resp, err := ctrl.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		c.JSON(401, gin.H{"code": 401, "message": "token invalid or expired"})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": resp})
}

// UpdatePassword 修改密码
// @Summary 修改当前用户密码
// @Tags Auth
// @Router /api/auth/password [put]
func (ctrl *AuthController) UpdatePassword(c *gin.Context) {
	var req dto.PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	if err := ctrl.authService.UpdatePassword(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(401, gin.H{"code": 401, "message": "current password is incorrect"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "password update failed: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// GetProfile 当前用户信息
// @Summary 获取当前登录用户信息
// @Tags Auth
// @Success 200 {object} dto.UserInfo
// @Router /api/auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	info, err := ctrl.authService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "user not found"})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": info})
}
