package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 搜索索引客户端 ====================
// 商城的商品检索托管在 Algolia 风格的搜索服务上，
// 这里只消费四个能力：批量写入、批量删除、按 objectID 取回、查询透传

// 批量接口单次最多提交的对象数
const batchSize = 100

// Object 索引中的反规范化商品文档
// objectID 形如 "<businessId>_<productId>"
type Object struct {
	ObjectID        string     `json:"objectID"`
	Name            string     `json:"name"`
	Business        string     `json:"business"`
	Geoloc          []GeoPoint `json:"_geoloc,omitempty"`
	PrimaryKeywords []string   `json:"primary_keywords"`
	Departments     []string   `json:"departments"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	PriceRange      [2]float64 `json:"price_range"`
	Link            string     `json:"link"`
	Image           string     `json:"image"`
	VariantTags     []string   `json:"variant_tags"`
	VariantImages   []string   `json:"variant_images"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Index 索引操作抽象，测试注入内存假实现
type Index interface {
	SaveObjects(ctx context.Context, objects []Object) error
	DeleteObjects(ctx context.Context, objectIDs []string) error
	GetObjects(ctx context.Context, objectIDs []string) ([]Object, error)
	Query(ctx context.Context, params string) (json.RawMessage, error)
}

// ==================== REST 实现 ====================

// Config 搜索服务连接配置
type Config struct {
	AppID     string
	APIKey    string
	IndexName string
	BaseURL   string // 留空时按 AppID 推导
}

// Client Index 的 REST 实现
type Client struct {
	client    *resty.Client
	indexName string
	baseURL   string
}

var _ Index = (*Client)(nil)

// NewClient 创建搜索索引客户端
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s-dsn.algolia.net", cfg.AppID)
	}
	return &Client{
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetRetryCount(2).
			SetHeader("X-Algolia-Application-Id", cfg.AppID).
			SetHeader("X-Algolia-API-Key", cfg.APIKey),
		indexName: cfg.IndexName,
		baseURL:   baseURL,
	}
}

type batchRequest struct {
	Action string      `json:"action"`
	Body   interface{} `json:"body"`
}

type batchPayload struct {
	Requests []batchRequest `json:"requests"`
}

// SaveObjects 批量写入对象，按 batchSize 分片提交
func (c *Client) SaveObjects(ctx context.Context, objects []Object) error {
	for start := 0; start < len(objects); start += batchSize {
		end := min(start+batchSize, len(objects))

		requests := make([]batchRequest, 0, end-start)
		for _, obj := range objects[start:end] {
			requests = append(requests, batchRequest{Action: "addObject", Body: obj})
		}
		if err := c.postBatch(ctx, requests); err != nil {
			return err
		}
	}
	return nil
}

// DeleteObjects 批量删除对象，按 batchSize 分片提交
func (c *Client) DeleteObjects(ctx context.Context, objectIDs []string) error {
	for start := 0; start < len(objectIDs); start += batchSize {
		end := min(start+batchSize, len(objectIDs))

		requests := make([]batchRequest, 0, end-start)
		for _, id := range objectIDs[start:end] {
			requests = append(requests, batchRequest{
				Action: "deleteObject",
				Body:   map[string]string{"objectID": id},
			})
		}
		if err := c.postBatch(ctx, requests); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) postBatch(ctx context.Context, requests []batchRequest) error {
	url := fmt.Sprintf("%s/1/indexes/%s/batch", c.baseURL, c.indexName)
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(batchPayload{Requests: requests}).
		Post(url)
	if err != nil {
		return fmt.Errorf("索引批量操作请求失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("索引批量操作异常 [%d]: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// GetObjects 按 objectID 批量取回对象 (收藏夹回填用)
func (c *Client) GetObjects(ctx context.Context, objectIDs []string) ([]Object, error) {
	type objectRequest struct {
		IndexName string `json:"indexName"`
		ObjectID  string `json:"objectID"`
	}
	payload := struct {
		Requests []objectRequest `json:"requests"`
	}{}
	for _, id := range objectIDs {
		payload.Requests = append(payload.Requests, objectRequest{IndexName: c.indexName, ObjectID: id})
	}

	var res struct {
		Results []Object `json:"results"`
	}
	url := fmt.Sprintf("%s/1/indexes/*/objects", c.baseURL)
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&res).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("索引取回请求失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("索引取回异常 [%d]: %s", resp.StatusCode(), resp.String())
	}
	return res.Results, nil
}

// Query 查询透传：params 是编码好的查询串 (query=...&page=...&filters=...)
// 响应原样转给前端，不在后端重新拼装
func (c *Client) Query(ctx context.Context, params string) (json.RawMessage, error) {
	payload := map[string]string{"params": params}

	url := fmt.Sprintf("%s/1/indexes/%s/query", c.baseURL, c.indexName)
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("索引查询请求失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("索引查询异常 [%d]: %s", resp.StatusCode(), resp.String())
	}
	return json.RawMessage(resp.Body()), nil
}
