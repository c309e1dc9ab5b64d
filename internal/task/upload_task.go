package task

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"locality_dev_v1_202609/internal/repository"
	"locality_dev_v1_202609/internal/service"
)

// ==================== UploadTask 每日目录重导入 ====================

// UploadTask 每天凌晨对所有配置了店面的商家重新导入目录
// 平台端商品变动没有回调，只能整轮重拉
type UploadTask struct {
	businessRepo  repository.BusinessRepository
	uploadService *service.UploadService
	cron          *cron.Cron

	// 并发控制：同时触发的商家数
	concurrencyLimit int
	sleepTime        time.Duration
}

// NewUploadTask 创建重导入任务
func NewUploadTask(businessRepo repository.BusinessRepository, uploadService *service.UploadService) *UploadTask {
	return &UploadTask{
		businessRepo:     businessRepo,
		uploadService:    uploadService,
		cron:             cron.New(cron.WithSeconds()),
		concurrencyLimit: 3,
		sleepTime:        500 * time.Millisecond,
	}
}

// SetConcurrency 设置并发参数
func (t *UploadTask) SetConcurrency(limit int, sleep time.Duration) {
	t.concurrencyLimit = limit
	t.sleepTime = sleep
}

// Start 启动定时任务
func (t *UploadTask) Start() {
	// 定时策略：每天凌晨 3 点
	_, err := t.cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()
		t.execute(ctx)
	})

	if err != nil {
		log.Fatalf("[UploadTask] 无法启动定时任务: %v", err)
	}

	t.cron.Start()
	log.Println("[UploadTask] 每日目录重导入任务已启动 (每天 03:00)")
}

// Stop 停止任务
func (t *UploadTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[UploadTask] 已停止")
}

// execute 执行一轮全量重导入
func (t *UploadTask) execute(ctx context.Context) {
	const pageSize = 100

	for page := 1; ; page++ {
		businesses, _, err := t.businessRepo.List(ctx, repository.BusinessFilter{
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			log.Printf("[UploadTask] 查询商家失败: %v", err)
			return
		}
		if len(businesses) == 0 {
			return
		}

		log.Printf("[UploadTask] 第 %d 批，共 %d 个商家", page, len(businesses))

		// 信号量控制并发
		sem := make(chan struct{}, t.concurrencyLimit)
		var wg sync.WaitGroup

		for i := range businesses {
			business := businesses[i]
			homepages, err := business.ParseHomepages()
			if err != nil {
				log.Printf("[UploadTask] 商家 %d 主页配置损坏: %v", business.ID, err)
				continue
			}
			if homepages.EtsyHomepage == "" && homepages.ShopifyHomepage == "" {
				continue
			}

			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				t.triggerBusiness(ctx, business.ID, homepages.EtsyHomepage != "", homepages.ShopifyHomepage != "")
			}()

			time.Sleep(t.sleepTime)
		}

		wg.Wait()
	}
}

// triggerBusiness 触发单个商家的重导入
// 触发接口只是落任务，实际拉取在 UploadService 后台运行
func (t *UploadTask) triggerBusiness(ctx context.Context, businessID int64, hasEtsy, hasShopify bool) {
	if hasEtsy {
		if _, err := t.uploadService.TriggerEtsy(ctx, businessID); err != nil && !errors.Is(err, service.ErrUploadRunning) {
			log.Printf("[UploadTask] 商家 %d Etsy 导入触发失败: %v", businessID, err)
		}
	}
	if hasShopify {
		if _, err := t.uploadService.TriggerShopify(ctx, businessID); err != nil && !errors.Is(err, service.ErrUploadRunning) {
			log.Printf("[UploadTask] 商家 %d Shopify 导入触发失败: %v", businessID, err)
		}
	}
}
