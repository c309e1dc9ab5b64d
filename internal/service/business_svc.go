package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/datatypes"

	"locality_dev_v1_202609/internal/api/dto"
	"locality_dev_v1_202609/internal/model"
	"locality_dev_v1_202609/internal/repository"
	"locality_dev_v1_202609/pkg/utils"
)

// ==================== BusinessService 商家服务 ====================

// BusinessService 商家资料与导入配置维护
type BusinessService struct {
	businessRepo repository.BusinessRepository
	storage      StorageProvider
}

// NewBusinessService 创建商家服务
func NewBusinessService(businessRepo repository.BusinessRepository, storage StorageProvider) *BusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		storage:      storage,
	}
}

// GetBusiness 取商家信息
func (s *BusinessService) GetBusiness(ctx context.Context, businessID int64) (*dto.BusinessInfo, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return toBusinessInfo(business), nil
}

// GetHomepages 取商家店面主页配置
func (s *BusinessService) GetHomepages(ctx context.Context, businessID int64) (model.Homepages, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return model.Homepages{}, err
	}
	return business.ParseHomepages()
}

// UpdateHomepages 更新店面主页配置，整列覆盖写
func (s *BusinessService) UpdateHomepages(ctx context.Context, businessID int64, req *dto.UpdateHomepagesRequest) error {
	homepages := model.Homepages{
		Homepage:        utils.SanitizeEncoded(req.Homepage),
		EtsyHomepage:    utils.SanitizeEncoded(req.EtsyHomepage),
		ShopifyHomepage: utils.SanitizeEncoded(req.ShopifyHomepage),
		SquareHomepage:  utils.SanitizeEncoded(req.SquareHomepage),
	}
	raw, err := json.Marshal(homepages)
	if err != nil {
		return err
	}
	return s.businessRepo.UpdateHomepages(ctx, businessID, datatypes.JSON(raw))
}

// GetUploadSettings 取导入过滤配置
func (s *BusinessService) GetUploadSettings(ctx context.Context, businessID int64) (model.UploadSettings, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return model.UploadSettings{}, err
	}
	return business.ParseUploadSettings()
}

// UpdateUploadSettings 更新导入过滤配置，整列覆盖写
func (s *BusinessService) UpdateUploadSettings(ctx context.Context, businessID int64, req *dto.UpdateUploadSettingsRequest) error {
	settings := model.UploadSettings{
		Etsy:    toPlatformSettings(req.Etsy),
		Shopify: toPlatformSettings(req.Shopify),
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.businessRepo.UpdateUploadSettings(ctx, businessID, datatypes.JSON(raw))
}

// UpdateLogo 上传新 Logo 并替换旧图
func (s *BusinessService) UpdateLogo(ctx context.Context, businessID int64, base64Image string) (string, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return "", err
	}

	url, err := SaveBase64ToStorage(ctx, s.storage, base64Image, fmt.Sprintf("logo_%d", businessID))
	if err != nil {
		return "", err
	}
	if err := s.businessRepo.UpdateLogo(ctx, businessID, url); err != nil {
		return "", err
	}

	// 旧图清理失败不影响主流程
	if business.LogoURL != "" {
		if err := s.storage.Delete(ctx, business.LogoURL); err != nil {
			log.Printf("[Business] 旧 Logo 清理失败 business=%d: %v", businessID, err)
		}
	}
	return url, nil
}

// UpdateDepartments 更新商家部门分类
func (s *BusinessService) UpdateDepartments(ctx context.Context, businessID int64, departments []string) error {
	return s.businessRepo.UpdateDepartments(ctx, businessID, utils.SanitizeTextSlice(departments))
}

// ==================== 辅助方法 ====================

func toPlatformSettings(p *dto.PlatformSettingsPayload) *model.PlatformSettings {
	if p == nil {
		return nil
	}
	settings := &model.PlatformSettings{
		IncludeTags: utils.SanitizeTextSlice(p.IncludeTags),
		ExcludeTags: utils.SanitizeTextSlice(p.ExcludeTags),
	}
	for _, entry := range p.DepartmentMapping {
		settings.DepartmentMapping = append(settings.DepartmentMapping, model.DepartmentMapping{
			Key:         utils.SanitizeText(entry.Key),
			Departments: utils.SanitizeTextSlice(entry.Departments),
		})
	}
	return settings
}

func toBusinessInfo(b *model.Business) *dto.BusinessInfo {
	return &dto.BusinessInfo{
		ID:            b.ID,
		Name:          b.Name,
		Email:         b.Email,
		Address:       b.Address,
		Latitude:      b.Latitude,
		Longitude:     b.Longitude,
		LogoURL:       b.LogoURL,
		Departments:   b.Departments,
		NextProductID: b.NextProductID,
	}
}
