package catalog

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"locality_dev_v1_202609/pkg/utils"
)

// ==================== ShopifyClient ====================

// Shopify 店面接口可承受 ~100 req/s，这里留 10ms 固定间隔
const shopifyPaceInterval = 10 * time.Millisecond

// validShopifyIPv4 Shopify 官方公布的店面 IP 列表，可能随时调整
// 来源: https://help.shopify.com/en/manual/online-store/domains/managing-domains/troubleshooting
var validShopifyIPv4 = map[string]struct{}{
	"23.227.38.32": {},
	"23.227.38.36": {},
	"23.227.38.65": {},
	"23.227.38.66": {},
	"23.227.38.67": {},
	"23.227.38.68": {},
	"23.227.38.69": {},
	"23.227.38.70": {},
	"23.227.38.71": {},
	"23.227.38.72": {},
	"23.227.38.73": {},
	"23.227.38.74": {},
}

var myshopifyRe = regexp.MustCompile(`.*\.myshopify\.com(/)?`)

// Resolver 域名解析抽象，测试时注入假解析器
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// ShopifyClient Shopify 店面目录拉取客户端
// 店面 products.json 是公开接口，无需鉴权，但要求域名确实指向 Shopify
type ShopifyClient struct {
	client   *resty.Client
	resolver Resolver
	pace     time.Duration
}

// ShopifyOption 客户端可选配置
type ShopifyOption func(*ShopifyClient)

// WithShopifyResolver 覆盖 DNS 解析器
func WithShopifyResolver(r Resolver) ShopifyOption {
	return func(c *ShopifyClient) { c.resolver = r }
}

// WithShopifyPace 覆盖请求间隔 (测试时置 0)
func WithShopifyPace(d time.Duration) ShopifyOption {
	return func(c *ShopifyClient) { c.pace = d }
}

// NewShopifyClient 创建 Shopify 客户端
func NewShopifyClient(opts ...ShopifyOption) *ShopifyClient {
	c := &ShopifyClient{
		client: resty.New().
			SetTimeout(20 * time.Second).
			SetRetryCount(2).
			SetHeader("User-Agent", "Locality-Go-App/1.0"),
		resolver: net.DefaultResolver,
		pace:     shopifyPaceInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifyStorefront 校验店面域名确实解析到 Shopify，并返回规范化后的主页地址
// myshopify.com 子域直连根域会出现证书主机名不匹配，这里去掉 www 前缀
func (c *ShopifyClient) VerifyStorefront(ctx context.Context, homepage string) (string, error) {
	domain := utils.ExtractDomain(homepage)
	if domain == "" {
		return "", fmt.Errorf("无法从主页地址解析域名: %s", homepage)
	}

	addrs, err := c.resolver.LookupHost(ctx, domain)
	if err != nil || len(addrs) == 0 {
		return "", fmt.Errorf("shopify 域名解析失败: %s", domain)
	}
	for _, addr := range addrs {
		if _, ok := validShopifyIPv4[addr]; !ok {
			return "", fmt.Errorf("域名 %s 未指向 Shopify (解析到 %s)", domain, addr)
		}
	}

	if myshopifyRe.MatchString(domain) {
		homepage = strings.Replace(homepage, "https://www.", "https://", 1)
	}
	return homepage, nil
}

// ListProducts 拉取店面商品的第 page 页
// 返回空切片表示翻页结束
func (c *ShopifyClient) ListProducts(ctx context.Context, homepage string, page int) ([]ShopifyProduct, error) {
	var res ShopifyProductsResp
	url := fmt.Sprintf("%s/collections/all/products.json", strings.TrimRight(homepage, "/"))

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetResult(&res).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("shopify products.json 请求失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("shopify products.json 异常 [%d]: %s", resp.StatusCode(), resp.String())
	}

	c.sleep(ctx)
	return res.Products, nil
}

func (c *ShopifyClient) sleep(ctx context.Context) {
	if c.pace <= 0 {
		return
	}
	select {
	case <-time.After(c.pace):
	case <-ctx.Done():
	}
}
