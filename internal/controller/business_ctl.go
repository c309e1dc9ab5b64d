package controller

import (
	"github.com/gin-gonic/gin"

	"locality_dev_v1_202609/internal/api/dto"
	"locality_dev_v1_202609/internal/middleware"
	"locality_dev_v1_202609/internal/service"
)

type BusinessController struct {
	businessService *service.BusinessService
}

func NewBusinessController(businessService *service.BusinessService) *BusinessController {
	return &BusinessController{businessService: businessService}
}

// requireBusiness 商家控制台接口都要求账号绑定商家
func requireBusiness(c *gin.Context) (int64, bool) {
	businessID := middleware.GetBusinessID(c)
	if businessID == 0 {
		c.JSON(403, gin.H{"code": 403, "message": "no business linked to this account"})
		return 0, false
	}
	return businessID, true
}

// ==================== 商家资料 ====================

// GetBusiness 获取当前商家信息
// @Summary 获取当前商家信息
// @Tags Business
// @Success 200 {object} dto.BusinessInfo
// @Router /api/dashboard/business [get]
func (ctrl *BusinessController) GetBusiness(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	info, err := ctrl.businessService.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "business not found"})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": info})
}

// ==================== 店面主页 ====================

// GetHomepages 获取店面主页配置
// @Summary 获取店面主页配置
// @Tags Business
// @Router /api/dashboard/homepages [get]
func (ctrl *BusinessController) GetHomepages(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	homepages, err := ctrl.businessService.GetHomepages(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to load homepages: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": homepages})
}

// UpdateHomepages 更新店面主页配置
// @Summary 更新店面主页配置
// @Tags Business
// @Router /api/dashboard/homepages [put]
func (ctrl *BusinessController) UpdateHomepages(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.UpdateHomepagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	if err := ctrl.businessService.UpdateHomepages(c.Request.Context(), businessID, &req); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to update homepages: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ==================== 导入配置 ====================

// GetUploadSettings 获取导入过滤配置
// @Summary 获取导入过滤配置
// @Tags Business
// @Router /api/dashboard/settings [get]
func (ctrl *BusinessController) GetUploadSettings(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	settings, err := ctrl.businessService.GetUploadSettings(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to load settings: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": settings})
}

// UpdateUploadSettings 更新导入过滤配置
// @Summary 更新导入过滤配置
// @Tags Business
// @Router /api/dashboard/settings [put]
func (ctrl *BusinessController) UpdateUploadSettings(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.UpdateUploadSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	if err := ctrl.businessService.UpdateUploadSettings(c.Request.Context(), businessID, &req); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to update settings: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ==================== Logo ====================

// UpdateLogo 上传商家 Logo
// @Summary 上传商家 Logo
// @Tags Business
// @Router /api/dashboard/logo [put]
func (ctrl *BusinessController) UpdateLogo(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.UpdateLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	url, err := ctrl.businessService.UpdateLogo(c.Request.Context(), businessID, req.Image)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to upload logo: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success", "data": gin.H{"logo_url": url}})
}

// ==================== 部门分类 ====================

// UpdateDepartments 更新商家部门分类
// @Summary 更新商家部门分类
// @Tags Business
// @Router /api/dashboard/departments [put]
func (ctrl *BusinessController) UpdateDepartments(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.UpdateDepartmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "invalid request: " + err.Error()})
		return
	}

	if err := ctrl.businessService.UpdateDepartments(c.Request.Context(), businessID, req.Departments); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "failed to update departments: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
