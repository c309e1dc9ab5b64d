package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== EtsyClient ====================

// Etsy Open API 公开限制：每秒最多 ~5 个请求
// 所有外呼之间统一间隔 500ms，固定步调，不做自适应退避
const etsyPaceInterval = 500 * time.Millisecond

// EtsyClient Etsy 目录拉取客户端
// 静态 API Key 鉴权，翻页与逐条详情拉取全部串行
type EtsyClient struct {
	client  *resty.Client
	apiKey  string
	baseURL string
	pace    time.Duration
}

// EtsyOption 客户端可选配置
type EtsyOption func(*EtsyClient)

// WithEtsyBaseURL 覆盖 API 地址 (测试时指向 httptest server)
func WithEtsyBaseURL(baseURL string) EtsyOption {
	return func(c *EtsyClient) { c.baseURL = baseURL }
}

// WithEtsyPace 覆盖请求间隔 (测试时置 0)
func WithEtsyPace(d time.Duration) EtsyOption {
	return func(c *EtsyClient) { c.pace = d }
}

// NewEtsyClient 创建 Etsy 客户端
func NewEtsyClient(apiKey string, opts ...EtsyOption) *EtsyClient {
	c := &EtsyClient{
		client: resty.New().
			SetTimeout(20 * time.Second).
			SetRetryCount(2).
			SetHeader("User-Agent", "Locality-Go-App/1.0"),
		apiKey:  apiKey,
		baseURL: "https://openapi.etsy.com",
		pace:    etsyPaceInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListActive 拉取店铺在售商品的第 page 页
// 返回空切片表示翻页结束
func (c *EtsyClient) ListActive(ctx context.Context, shopID string, page int) ([]EtsyListing, error) {
	var res EtsyListingsResp
	url := fmt.Sprintf("%s/v2/shops/%s/listings/active", c.baseURL, shopID)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetResult(&res).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("etsy listings/active 请求失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("etsy listings/active 异常 [%d]: %s", resp.StatusCode(), resp.String())
	}

	c.sleep(ctx)
	return res.Results, nil
}

// GetListing 拉取单条商品详情 (含主图与规格)
func (c *EtsyClient) GetListing(ctx context.Context, listingID int64) (*EtsyListingDetail, error) {
	var res EtsyListingDetailResp
	url := fmt.Sprintf("%s/v2/listings/%d", c.baseURL, listingID)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("includes", "MainImage,Variations").
		SetResult(&res).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("etsy listing 详情请求失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("etsy listing 详情异常 [%d]: %s", resp.StatusCode(), resp.String())
	}
	if len(res.Results) == 0 {
		return nil, fmt.Errorf("etsy listing %d 详情为空", listingID)
	}

	c.sleep(ctx)
	return &res.Results[0], nil
}

// GetInventory 拉取单条商品的库存报价
func (c *EtsyClient) GetInventory(ctx context.Context, listingID int64) (*EtsyInventory, error) {
	var res EtsyInventoryResp
	url := fmt.Sprintf("%s/v2/listings/%d/inventory", c.baseURL, listingID)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetResult(&res).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("etsy inventory 请求失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("etsy inventory 异常 [%d]: %s", resp.StatusCode(), resp.String())
	}

	c.sleep(ctx)
	return &res.Results, nil
}

// sleep 固定步调等待，ctx 取消时提前返回
func (c *EtsyClient) sleep(ctx context.Context) {
	if c.pace <= 0 {
		return
	}
	select {
	case <-time.After(c.pace):
	case <-ctx.Done():
	}
}
