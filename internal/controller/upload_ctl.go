package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"locality_dev_v1_202609/internal/api/dto"
	"locality_dev_v1_202609/internal/middleware"
	"locality_dev_v1_202609/internal/model"
	"locality_dev_v1_202609/internal/service"
)

type UploadController struct {
	uploadService *service.UploadService
}

func NewUploadController(uploadService *service.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// ==================== 导入触发 ====================

// TriggerEtsy 触发 Etsy 目录导入
// @Summary 触发当前商家的 Etsy 目录导入
// @Tags Upload
// @Success 204
// @Router /api/dashboard/upload/etsy [post]
func (ctrl *UploadController) TriggerEtsy(c *gin.Context) {
	ctrl.trigger(c, model.SourceEtsy)
}

// TriggerShopify 触发 Shopify 目录导入
// @Summary 触发当前商家的 Shopify 目录导入
// @Tags Upload
// @Success 204
// @Router /api/dashboard/upload/shopify [post]
func (ctrl *UploadController) TriggerShopify(c *gin.Context) {
	ctrl.trigger(c, model.SourceShopify)
}

// trigger 前置校验通过即返回 204，导入在后台继续跑
// 任务 ID 通过响应头带回，供调用方轮询
func (ctrl *UploadController) trigger(c *gin.Context, source string) {
	businessID := middleware.GetBusinessID(c)
	if businessID == 0 {
		c.JSON(403, gin.H{"code": 403, "message": "no business linked to this account"})
		return
	}

	ctx := c.Request.Context()
	var job *model.ImportJob
	var err error
	switch source {
	case model.SourceEtsy:
		job, err = ctrl.uploadService.TriggerEtsy(ctx, businessID)
	default:
		job, err = ctrl.uploadService.TriggerShopify(ctx, businessID)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoStorefront):
			c.JSON(400, gin.H{"code": 400, "message": "no valid storefront configured for this platform"})
		case errors.Is(err, service.ErrUploadRunning):
			c.JSON(429, gin.H{"code": 429, "message": "an import is already running for this business"})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "failed to start import: " + err.Error()})
		}
		return
	}

	c.Header("X-Import-Job", job.ID)
	c.Status(204)
}

// ==================== 任务状态 ====================

// GetJob 查询导入任务状态
// @Summary 查询导入任务状态
// @Tags Upload
// @Param id path string true "任务ID"
// @Success 200 {object} dto.ImportJobInfo
// @Router /api/dashboard/upload/jobs/{id} [get]
func (ctrl *UploadController) GetJob(c *gin.Context) {
	job, err := ctrl.uploadService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "job not found"})
		return
	}
	if job.BusinessID != middleware.GetBusinessID(c) {
		c.JSON(403, gin.H{"code": 403, "message": "permission denied"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    toImportJobInfo(job),
	})
}

// GetLatestJob 查询最近一次导入
// @Summary 查询当前商家最近一次导入任务
// @Tags Upload
// @Param source query string false "来源平台 etsy|shopify"
// @Success 200 {object} dto.ImportJobInfo
// @Router /api/dashboard/upload/latest [get]
func (ctrl *UploadController) GetLatestJob(c *gin.Context) {
	businessID := middleware.GetBusinessID(c)
	if businessID == 0 {
		c.JSON(403, gin.H{"code": 403, "message": "no business linked to this account"})
		return
	}

	job, err := ctrl.uploadService.LatestJob(c.Request.Context(), businessID, c.Query("source"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "no import has run yet"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    toImportJobInfo(job),
	})
}

func toImportJobInfo(job *model.ImportJob) *dto.ImportJobInfo {
	info := &dto.ImportJobInfo{
		ID:            job.ID,
		BusinessID:    job.BusinessID,
		Source:        job.Source,
		Status:        job.Status,
		PagesFetched:  job.PagesFetched,
		ItemsSeen:     job.ItemsSeen,
		ItemsAccepted: job.ItemsAccepted,
		Error:         job.Error,
	}
	if job.StartedAt != nil {
		info.StartedAt = job.StartedAt.Format("2006-01-02 15:04:05")
	}
	if job.FinishedAt != nil {
		info.FinishedAt = job.FinishedAt.Format("2006-01-02 15:04:05")
	}
	return info
}
