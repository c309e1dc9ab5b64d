package service

import (
	"context"

	"locality_dev_v1_202609/internal/api/dto"
	"locality_dev_v1_202609/internal/model"
	"locality_dev_v1_202609/internal/repository"
	"locality_dev_v1_202609/pkg/search"
	"locality_dev_v1_202609/pkg/utils"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品手动维护
// 导入之外单独上架的商品走这里，同样占用商家 ID 计数器，
// 避免与下一轮导入分配的 ID 撞号
type ProductService struct {
	businessRepo repository.BusinessRepository
	productRepo  repository.ProductRepository
	index        search.Index
}

// NewProductService 创建商品服务
func NewProductService(
	businessRepo repository.BusinessRepository,
	productRepo repository.ProductRepository,
	index search.Index,
) *ProductService {
	return &ProductService{
		businessRepo: businessRepo,
		productRepo:  productRepo,
		index:        index,
	}
}

// CreateProduct 手动新增商品，写库写索引并推进 ID 计数器
func (s *ProductService) CreateProduct(ctx context.Context, businessID int64, req *dto.CreateProductRequest) (*dto.ProductInfo, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	product := buildProduct(business.ID, business.NextProductID, req)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	if err := s.index.SaveObjects(ctx, []search.Object{toObject(product, business)}); err != nil {
		return nil, err
	}
	if err := s.businessRepo.UpdateNextProductID(ctx, businessID, business.NextProductID+1); err != nil {
		return nil, err
	}
	return toProductInfo(product), nil
}

// UpdateProduct 更新商品，库和索引同步覆盖
func (s *ProductService) UpdateProduct(ctx context.Context, businessID, productID int64, req *dto.UpdateProductRequest) (*dto.ProductInfo, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	existing, err := s.productRepo.GetByBusinessProduct(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}

	updated := buildProduct(businessID, productID, req)
	updated.BaseModel = existing.BaseModel
	if err := s.productRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	if err := s.index.SaveObjects(ctx, []search.Object{toObject(updated, business)}); err != nil {
		return nil, err
	}
	return toProductInfo(updated), nil
}

// DeleteProduct 删除商品，库和索引同步删除
func (s *ProductService) DeleteProduct(ctx context.Context, businessID, productID int64) error {
	product, err := s.productRepo.GetByBusinessProduct(ctx, businessID, productID)
	if err != nil {
		return err
	}
	if err := s.index.DeleteObjects(ctx, []string{product.ObjectID()}); err != nil {
		return err
	}
	return s.productRepo.DeleteByBusinessProduct(ctx, businessID, productID)
}

// ListProducts 商家商品分页列表
func (s *ProductService) ListProducts(ctx context.Context, businessID int64, req *dto.ProductListRequest) (*dto.ProductListResponse, error) {
	products, total, err := s.productRepo.ListByBusiness(ctx, businessID, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ProductInfo, len(products))
	for i := range products {
		list[i] = toProductInfo(&products[i])
	}
	return &dto.ProductListResponse{List: list, Total: total}, nil
}

// GetProduct 取单个商品
func (s *ProductService) GetProduct(ctx context.Context, businessID, productID int64) (*dto.ProductInfo, error) {
	product, err := s.productRepo.GetByBusinessProduct(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}
	return toProductInfo(product), nil
}

// ==================== 辅助方法 ====================

func buildProduct(businessID, productID int64, req *dto.CreateProductRequest) *model.Product {
	priceLow, priceHigh := req.PriceLow, req.PriceHigh
	if priceLow == 0 && priceHigh == 0 {
		priceLow, priceHigh = req.Price, req.Price
	}
	if priceHigh < priceLow {
		priceLow, priceHigh = priceHigh, priceLow
	}

	// 无变体商品合成一个空标签变体，与导入链路保持同构
	// 先清洗再补空变体，SanitizeTextSlice 会丢掉空串
	variantTags := utils.SanitizeTextSlice(req.VariantTags)
	if len(variantTags) == 0 {
		variantTags = []string{""}
	}
	variantImages := req.VariantImages
	for len(variantImages) < len(variantTags) {
		variantImages = append(variantImages, req.Image)
	}
	variantImages = variantImages[:len(variantTags)]

	return &model.Product{
		BusinessID:    businessID,
		ProductID:     productID,
		Name:          utils.SanitizeText(req.Name),
		Description:   utils.SanitizeRichText(req.Description),
		Link:          utils.SanitizeEncoded(req.Link),
		Image:         utils.SanitizeEncoded(req.Image),
		Departments:   utils.SanitizeTextSlice(req.Departments),
		Tags:          utils.SanitizeTextSlice(req.Tags),
		Price:         req.Price,
		PriceLow:      priceLow,
		PriceHigh:     priceHigh,
		VariantTags:   variantTags,
		VariantImages: variantImages,
	}
}

func toObject(p *model.Product, business *model.Business) search.Object {
	return search.Object{
		ObjectID:        p.ObjectID(),
		Name:            p.Name,
		Business:        business.Name,
		Geoloc:          parseGeoloc(business.Latitude, business.Longitude),
		PrimaryKeywords: p.Tags,
		Departments:     p.Departments,
		Description:     p.Description,
		Price:           p.Price,
		PriceRange:      [2]float64{p.PriceLow, p.PriceHigh},
		Link:            p.Link,
		Image:           p.Image,
		VariantTags:     p.VariantTags,
		VariantImages:   p.VariantImages,
	}
}

func toProductInfo(p *model.Product) *dto.ProductInfo {
	return &dto.ProductInfo{
		ObjectID:      p.ObjectID(),
		BusinessID:    p.BusinessID,
		ProductID:     p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Link:          p.Link,
		Image:         p.Image,
		Departments:   p.Departments,
		Tags:          p.Tags,
		Price:         p.Price,
		PriceLow:      p.PriceLow,
		PriceHigh:     p.PriceHigh,
		VariantTags:   p.VariantTags,
		VariantImages: p.VariantImages,
	}
}
