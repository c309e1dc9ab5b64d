package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"locality_dev_v1_202609/internal/model"
	"locality_dev_v1_202609/internal/repository"
	"locality_dev_v1_202609/pkg/catalog"
	"locality_dev_v1_202609/pkg/search"
	"locality_dev_v1_202609/pkg/utils"
)

// ==================== 目录导入服务 ====================

var (
	// ErrNoStorefront 商家未配置该平台的店面主页
	ErrNoStorefront = errors.New("商家未配置该平台店面主页")
	// ErrUploadRunning 同商家同来源已有导入在运行
	ErrUploadRunning = errors.New("导入任务正在运行中")
)

// EtsySource Etsy 目录数据源
type EtsySource interface {
	ListActive(ctx context.Context, shopID string, page int) ([]catalog.EtsyListing, error)
	GetListing(ctx context.Context, listingID int64) (*catalog.EtsyListingDetail, error)
	GetInventory(ctx context.Context, listingID int64) (*catalog.EtsyInventory, error)
}

// ShopifySource Shopify 店面数据源
type ShopifySource interface {
	VerifyStorefront(ctx context.Context, homepage string) (string, error)
	ListProducts(ctx context.Context, homepage string, page int) ([]catalog.ShopifyProduct, error)
}

// UploadService 目录导入流水线
// 触发入口做前置校验并落一条 queued 任务记录，实际拉取在后台 goroutine 执行
type UploadService struct {
	businessRepo repository.BusinessRepository
	productRepo  repository.ProductRepository
	jobRepo      repository.ImportJobRepository
	index        search.Index
	etsy         EtsySource
	shopify      ShopifySource
	registry     RunRegistry
}

func NewUploadService(
	businessRepo repository.BusinessRepository,
	productRepo repository.ProductRepository,
	jobRepo repository.ImportJobRepository,
	index search.Index,
	etsy EtsySource,
	shopify ShopifySource,
	registry RunRegistry,
) *UploadService {
	return &UploadService{
		businessRepo: businessRepo,
		productRepo:  productRepo,
		jobRepo:      jobRepo,
		index:        index,
		etsy:         etsy,
		shopify:      shopify,
		registry:     registry,
	}
}

// TriggerEtsy 触发 Etsy 导入
// 前置校验通过后立即返回 queued 任务，调用方凭任务 ID 轮询结果
func (s *UploadService) TriggerEtsy(ctx context.Context, businessID int64) (*model.ImportJob, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	homepages, err := business.ParseHomepages()
	if err != nil {
		return nil, err
	}
	if homepages.EtsyHomepage == "" {
		return nil, ErrNoStorefront
	}
	shopID := utils.TrailingSegment(homepages.EtsyHomepage)
	if shopID == "" {
		return nil, ErrNoStorefront
	}

	settings, err := business.ParseUploadSettings()
	if err != nil {
		return nil, err
	}
	platform := settings.PlatformSettingsFor(model.SourceEtsy)

	job, err := s.enqueue(ctx, business, model.SourceEtsy)
	if err != nil {
		return nil, err
	}

	go s.run(job, business, func(ctx context.Context, job *model.ImportJob) ([]catalog.Item, error) {
		return s.fetchEtsy(ctx, job, shopID, platform)
	})
	return job, nil
}

// TriggerShopify 触发 Shopify 导入
// 先做店面域名校验，不是托管在 Shopify 的域名直接拒绝
func (s *UploadService) TriggerShopify(ctx context.Context, businessID int64) (*model.ImportJob, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	homepages, err := business.ParseHomepages()
	if err != nil {
		return nil, err
	}
	if homepages.ShopifyHomepage == "" {
		return nil, ErrNoStorefront
	}

	homepage, err := s.shopify.VerifyStorefront(ctx, utils.AddHTTPSProtocol(homepages.ShopifyHomepage))
	if err != nil {
		log.Printf("[Upload] 店面校验失败 business=%d: %v", businessID, err)
		return nil, ErrNoStorefront
	}

	settings, err := business.ParseUploadSettings()
	if err != nil {
		return nil, err
	}
	platform := settings.PlatformSettingsFor(model.SourceShopify)

	job, err := s.enqueue(ctx, business, model.SourceShopify)
	if err != nil {
		return nil, err
	}

	go s.run(job, business, func(ctx context.Context, job *model.ImportJob) ([]catalog.Item, error) {
		return s.fetchShopify(ctx, job, homepage, platform)
	})
	return job, nil
}

// GetJob 查询导入任务
func (s *UploadService) GetJob(ctx context.Context, jobID string) (*model.ImportJob, error) {
	return s.jobRepo.GetByID(ctx, jobID)
}

// LatestJob 查询商家最近一次导入
func (s *UploadService) LatestJob(ctx context.Context, businessID int64, source string) (*model.ImportJob, error) {
	return s.jobRepo.LatestByBusiness(ctx, businessID, source)
}

// ==================== 内部实现 ====================

// enqueue 占用运行槽位并落 queued 任务记录
func (s *UploadService) enqueue(ctx context.Context, business *model.Business, source string) (*model.ImportJob, error) {
	if !s.registry.Acquire(business.ID, source) {
		return nil, ErrUploadRunning
	}

	job := &model.ImportJob{
		ID:         uuid.NewString(),
		BusinessID: business.ID,
		Source:     source,
		Status:     model.ImportJobQueued,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		s.registry.Release(business.ID, source)
		return nil, err
	}
	return job, nil
}

type fetchFunc func(ctx context.Context, job *model.ImportJob) ([]catalog.Item, error)

// run 执行一次完整导入：拉取规范化 → 整体替换 → 推进计数器
// 任何一步失败整轮作废，旧商品集保持原样
func (s *UploadService) run(job *model.ImportJob, business *model.Business, fetch fetchFunc) {
	// 请求上下文在 204 返回后即失效，后台任务用独立上下文
	ctx := context.Background()
	defer s.registry.Release(business.ID, job.Source)

	now := time.Now()
	job.Status = model.ImportJobRunning
	job.StartedAt = &now
	if err := s.jobRepo.Update(ctx, job); err != nil {
		log.Printf("[Upload] 更新任务状态失败 job=%s: %v", job.ID, err)
	}

	items, err := fetch(ctx, job)
	if err == nil {
		err = s.replace(ctx, business, items)
	}

	done := time.Now()
	job.FinishedAt = &done
	if err != nil {
		log.Printf("[Upload] 导入失败 business=%d source=%s: %v", business.ID, job.Source, err)
		job.Status = model.ImportJobFailed
		job.Error = err.Error()
	} else {
		log.Printf("[Upload] 导入完成 business=%d source=%s pages=%d seen=%d accepted=%d",
			business.ID, job.Source, job.PagesFetched, job.ItemsSeen, job.ItemsAccepted)
		job.Status = model.ImportJobSucceeded
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		log.Printf("[Upload] 更新任务状态失败 job=%s: %v", job.ID, err)
	}
}

// fetchEtsy 顺序翻页拉取 Etsy 在售商品
// 列表页只带标签先过滤，通过的再拉详情与库存报价，拉空页为止
func (s *UploadService) fetchEtsy(ctx context.Context, job *model.ImportJob, shopID string, platform model.PlatformSettings) ([]catalog.Item, error) {
	filter := catalog.NewTagFilter(platform.IncludeTags, platform.ExcludeTags)
	items := make([]catalog.Item, 0)

	for page := 1; ; page++ {
		listings, err := s.etsy.ListActive(ctx, shopID, page)
		if err != nil {
			return nil, fmt.Errorf("拉取商品列表第 %d 页失败: %w", page, err)
		}
		if len(listings) == 0 {
			break
		}
		job.PagesFetched++

		for _, listing := range listings {
			job.ItemsSeen++
			if !filter.Allow(listing.Tags) {
				continue
			}

			detail, err := s.etsy.GetListing(ctx, listing.ListingID)
			if err != nil {
				return nil, fmt.Errorf("拉取商品详情 %d 失败: %w", listing.ListingID, err)
			}
			item := catalog.NormalizeEtsyListing(detail)

			inv, err := s.etsy.GetInventory(ctx, listing.ListingID)
			if err != nil {
				return nil, fmt.Errorf("拉取库存报价 %d 失败: %w", listing.ListingID, err)
			}
			if catalog.ApplyEtsyOfferings(&item, inv) {
				log.Printf("[Upload] 非 USD 报价缺少换算块，已回退原始价 listing=%d", listing.ListingID)
			}

			items = append(items, item)
			job.ItemsAccepted++
		}
	}
	return items, nil
}

// fetchShopify 顺序翻页拉取 Shopify 店面商品，拉空页为止
func (s *UploadService) fetchShopify(ctx context.Context, job *model.ImportJob, homepage string, platform model.PlatformSettings) ([]catalog.Item, error) {
	filter := catalog.NewTagFilter(platform.IncludeTags, platform.ExcludeTags)
	deptMap := platform.DepartmentMap()
	items := make([]catalog.Item, 0)

	for page := 1; ; page++ {
		products, err := s.shopify.ListProducts(ctx, homepage, page)
		if err != nil {
			return nil, fmt.Errorf("拉取店面商品第 %d 页失败: %w", page, err)
		}
		if len(products) == 0 {
			break
		}
		job.PagesFetched++

		for i := range products {
			job.ItemsSeen++
			item, ok := catalog.NormalizeShopifyProduct(&products[i], homepage, deptMap)
			if !ok {
				continue
			}
			if !filter.Allow(item.Tags) {
				continue
			}
			items = append(items, item)
			job.ItemsAccepted++
		}
	}
	return items, nil
}

// replace 用本轮商品整体替换商家旧商品集
// 先清空索引与库里的旧集，再写入新集，最后按接受数推进 ID 计数器
func (s *UploadService) replace(ctx context.Context, business *model.Business, items []catalog.Item) error {
	initialID := business.NextProductID
	geoloc := parseGeoloc(business.Latitude, business.Longitude)

	products := make([]model.Product, 0, len(items))
	objects := make([]search.Object, 0, len(items))
	for i, item := range items {
		productID := initialID + int64(i)
		product := model.Product{
			BusinessID:    business.ID,
			ProductID:     productID,
			Name:          item.Name,
			Description:   item.Description,
			Link:          item.Link,
			Image:         item.Image,
			Departments:   item.Departments,
			Tags:          item.Tags,
			Price:         item.PriceLow,
			PriceLow:      item.PriceLow,
			PriceHigh:     item.PriceHigh,
			VariantTags:   item.VariantTags,
			VariantImages: item.VariantImages,
		}
		products = append(products, product)
		objects = append(objects, search.Object{
			ObjectID:        product.ObjectID(),
			Name:            item.Name,
			Business:        business.Name,
			Geoloc:          geoloc,
			PrimaryKeywords: item.Tags,
			Departments:     item.Departments,
			Description:     item.Description,
			Price:           item.PriceLow,
			PriceRange:      [2]float64{item.PriceLow, item.PriceHigh},
			Link:            item.Link,
			Image:           item.Image,
			VariantTags:     item.VariantTags,
			VariantImages:   item.VariantImages,
		})
	}

	oldIDs, err := s.productRepo.ListObjectIDs(ctx, business.ID)
	if err != nil {
		return fmt.Errorf("读取旧商品集失败: %w", err)
	}
	if len(oldIDs) > 0 {
		if err := s.index.DeleteObjects(ctx, oldIDs); err != nil {
			return fmt.Errorf("清空索引旧商品失败: %w", err)
		}
	}
	if err := s.productRepo.DeleteByBusiness(ctx, business.ID); err != nil {
		return fmt.Errorf("清空库内旧商品失败: %w", err)
	}

	if len(objects) > 0 {
		if err := s.index.SaveObjects(ctx, objects); err != nil {
			return fmt.Errorf("写入索引失败: %w", err)
		}
	}
	if err := s.productRepo.BatchInsert(ctx, products); err != nil {
		return fmt.Errorf("写入商品失败: %w", err)
	}

	next := initialID + int64(len(items))
	if err := s.businessRepo.UpdateNextProductID(ctx, business.ID, next); err != nil {
		return fmt.Errorf("推进商品 ID 计数器失败: %w", err)
	}
	business.NextProductID = next
	return nil
}

// parseGeoloc 解析逗号分隔的多门店坐标，长度不齐或解析失败的项跳过
func parseGeoloc(latitude, longitude string) []search.GeoPoint {
	lats := strings.Split(latitude, ",")
	lngs := strings.Split(longitude, ",")
	n := len(lats)
	if len(lngs) < n {
		n = len(lngs)
	}

	points := make([]search.GeoPoint, 0, n)
	for i := 0; i < n; i++ {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(lats[i]), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(lngs[i]), 64)
		if errLat != nil || errLng != nil {
			continue
		}
		points = append(points, search.GeoPoint{Lat: lat, Lng: lng})
	}
	return points
}
