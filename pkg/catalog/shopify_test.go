package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeResolver 固定返回配置的解析结果
type fakeResolver struct {
	addrs map[string][]string
}

func (r *fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	addrs, ok := r.addrs[host]
	if !ok {
		return nil, fmt.Errorf("no such host: %s", host)
	}
	return addrs, nil
}

func TestShopifyClient_VerifyStorefront(t *testing.T) {
	resolver := &fakeResolver{addrs: map[string][]string{
		"www.craft.example.com":    {"23.227.38.32"},
		"www.other.example.com":    {"93.184.216.34"},
		"www.mixed.example.com":    {"23.227.38.32", "93.184.216.34"},
		"www.shop.myshopify.com":   {"23.227.38.65"},
		"www.unresolved.shop.test": nil,
	}}
	client := NewShopifyClient(WithShopifyResolver(resolver), WithShopifyPace(0))
	ctx := context.Background()

	t.Run("指向Shopify通过", func(t *testing.T) {
		homepage, err := client.VerifyStorefront(ctx, "https://www.craft.example.com")
		if err != nil {
			t.Fatalf("VerifyStorefront() error = %v", err)
		}
		if homepage != "https://www.craft.example.com" {
			t.Errorf("homepage = %q", homepage)
		}
	})

	t.Run("未指向Shopify拒绝", func(t *testing.T) {
		if _, err := client.VerifyStorefront(ctx, "https://www.other.example.com"); err == nil {
			t.Error("非 Shopify 域名应被拒绝")
		}
	})

	t.Run("部分地址不在白名单拒绝", func(t *testing.T) {
		if _, err := client.VerifyStorefront(ctx, "https://www.mixed.example.com"); err == nil {
			t.Error("混合解析结果应被拒绝")
		}
	})

	t.Run("myshopify域名去掉www", func(t *testing.T) {
		homepage, err := client.VerifyStorefront(ctx, "https://www.shop.myshopify.com")
		if err != nil {
			t.Fatalf("VerifyStorefront() error = %v", err)
		}
		if homepage != "https://shop.myshopify.com" {
			t.Errorf("homepage = %q, myshopify 域名应去掉 www 前缀", homepage)
		}
	})

	t.Run("解析失败拒绝", func(t *testing.T) {
		if _, err := client.VerifyStorefront(ctx, "https://www.unresolved.shop.test"); err == nil {
			t.Error("解析失败应被拒绝")
		}
	})

	t.Run("无法提取域名拒绝", func(t *testing.T) {
		if _, err := client.VerifyStorefront(ctx, "https://no-www-prefix.com"); err == nil {
			t.Error("没有 www 前缀的地址无法提取域名，应被拒绝")
		}
	})
}

func TestShopifyClient_ListProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !strings.HasSuffix(r.URL.Path, "/collections/all/products.json") {
			t.Errorf("路径错误: %s", r.URL.Path)
		}

		switch r.URL.Query().Get("page") {
		case "1":
			json.NewEncoder(w).Encode(ShopifyProductsResp{
				Products: []ShopifyProduct{
					{ID: 1, Title: "Bowl", Handle: "bowl"},
				},
			})
		default:
			json.NewEncoder(w).Encode(ShopifyProductsResp{})
		}
	}))
	defer server.Close()

	client := NewShopifyClient(WithShopifyPace(0))
	ctx := context.Background()

	products, err := client.ListProducts(ctx, server.URL, 1)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 1 || products[0].Handle != "bowl" {
		t.Errorf("ListProducts() = %+v", products)
	}

	products, err = client.ListProducts(ctx, server.URL, 2)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 0 {
		t.Errorf("第 2 页应为空, got %d", len(products))
	}
}

func TestShopifyClient_ListProducts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewShopifyClient(WithShopifyPace(0))
	if _, err := client.ListProducts(context.Background(), server.URL, 1); err == nil {
		t.Error("服务端 404 应返回错误")
	}
}
