package repository

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"locality_dev_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// BusinessRepository 商家仓储接口
type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	GetByID(ctx context.Context, id int64) (*model.Business, error)
	List(ctx context.Context, filter BusinessFilter) ([]model.Business, int64, error)

	// 导入计数器：读取走 GetByID，推进单独一条 UPDATE
	UpdateNextProductID(ctx context.Context, id int64, nextProductID int64) error

	// 仪表盘各项更新
	UpdateHomepages(ctx context.Context, id int64, homepages datatypes.JSON) error
	UpdateUploadSettings(ctx context.Context, id int64, settings datatypes.JSON) error
	UpdateLogo(ctx context.Context, id int64, logoURL string) error
	UpdateDepartments(ctx context.Context, id int64, departments []string) error
}

// BusinessFilter 商家过滤条件
type BusinessFilter struct {
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type businessRepo struct {
	db *gorm.DB
}

// NewBusinessRepository 创建商家仓储
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, business *model.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepo) GetByID(ctx context.Context, id int64) (*model.Business, error) {
	var business model.Business
	if err := r.db.WithContext(ctx).First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepo) List(ctx context.Context, filter BusinessFilter) ([]model.Business, int64, error) {
	var (
		businesses []model.Business
		total      int64
	)

	query := r.db.WithContext(ctx).Model(&model.Business{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Order("id asc").Find(&businesses).Error; err != nil {
		return nil, 0, err
	}
	return businesses, total, nil
}

func (r *businessRepo) UpdateNextProductID(ctx context.Context, id int64, nextProductID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("id = ?", id).
		Update("next_product_id", nextProductID).Error
}

func (r *businessRepo) UpdateHomepages(ctx context.Context, id int64, homepages datatypes.JSON) error {
	return r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("id = ?", id).
		Update("homepages", homepages).Error
}

func (r *businessRepo) UpdateUploadSettings(ctx context.Context, id int64, settings datatypes.JSON) error {
	return r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("id = ?", id).
		Update("upload_settings", settings).Error
}

func (r *businessRepo) UpdateLogo(ctx context.Context, id int64, logoURL string) error {
	return r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("id = ?", id).
		Update("logo_url", logoURL).Error
}

func (r *businessRepo) UpdateDepartments(ctx context.Context, id int64, departments []string) error {
	return r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("id = ?", id).
		Update("departments", pq.StringArray(departments)).Error
}
