package repository

import (
	"context"

	"gorm.io/gorm"

	"locality_dev_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口 (索引文档的本地镜像)
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByBusinessProduct(ctx context.Context, businessID, productID int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	DeleteByBusinessProduct(ctx context.Context, businessID, productID int64) error
	ListByBusiness(ctx context.Context, businessID int64, page, pageSize int) ([]model.Product, int64, error)

	// 导入的整体替换：取旧 objectID 集合 → 删全部 → 批量插入新集合
	ListObjectIDs(ctx context.Context, businessID int64) ([]string, error)
	DeleteByBusiness(ctx context.Context, businessID int64) error
	BatchInsert(ctx context.Context, products []model.Product) error
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByBusinessProduct(ctx context.Context, businessID, productID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND product_id = ?", businessID, productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) DeleteByBusinessProduct(ctx context.Context, businessID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("business_id = ? AND product_id = ?", businessID, productID).
		Delete(&model.Product{}).Error
}

func (r *productRepo) ListByBusiness(ctx context.Context, businessID int64, page, pageSize int) ([]model.Product, int64, error) {
	var (
		products []model.Product
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&model.Product{}).Where("business_id = ?", businessID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := query.Order("product_id asc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) ListObjectIDs(ctx context.Context, businessID int64) ([]string, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Select("business_id", "product_id").
		Where("business_id = ?", businessID).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ObjectID())
	}
	return ids, nil
}

func (r *productRepo) DeleteByBusiness(ctx context.Context, businessID int64) error {
	return r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Delete(&model.Product{}).Error
}

func (r *productRepo) BatchInsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(products, 100).Error
}
