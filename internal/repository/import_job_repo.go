package repository

import (
	"context"

	"gorm.io/gorm"

	"locality_dev_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// ImportJobRepository 导入任务仓储接口
type ImportJobRepository interface {
	Create(ctx context.Context, job *model.ImportJob) error
	GetByID(ctx context.Context, id string) (*model.ImportJob, error)
	Update(ctx context.Context, job *model.ImportJob) error
	LatestByBusiness(ctx context.Context, businessID int64, source string) (*model.ImportJob, error)
	ListByBusiness(ctx context.Context, businessID int64, limit int) ([]model.ImportJob, error)
}

// ==================== 仓储实现 ====================

type importJobRepo struct {
	db *gorm.DB
}

// NewImportJobRepository 创建导入任务仓储
func NewImportJobRepository(db *gorm.DB) ImportJobRepository {
	return &importJobRepo{db: db}
}

func (r *importJobRepo) Create(ctx context.Context, job *model.ImportJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *importJobRepo) GetByID(ctx context.Context, id string) (*model.ImportJob, error) {
	var job model.ImportJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *importJobRepo) Update(ctx context.Context, job *model.ImportJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *importJobRepo) LatestByBusiness(ctx context.Context, businessID int64, source string) (*model.ImportJob, error) {
	var job model.ImportJob
	query := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if source != "" {
		query = query.Where("source = ?", source)
	}
	if err := query.Order("created_at desc").First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *importJobRepo) ListByBusiness(ctx context.Context, businessID int64, limit int) ([]model.ImportJob, error) {
	var jobs []model.ImportJob
	if limit <= 0 {
		limit = 20
	}
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at desc").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}
