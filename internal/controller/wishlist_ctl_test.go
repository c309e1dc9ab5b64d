package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"locality_dev_v1_202609/internal/middleware"
	"locality_dev_v1_202609/internal/model"
	"locality_dev_v1_202609/internal/repository"
	"locality_dev_v1_202609/internal/service"
	"locality_dev_v1_202609/pkg/search"
)

// stubIndex 收藏夹展示只用 GetObjects，其余方法留空实现
type stubIndex struct {
	objects map[string]search.Object
}

func (s *stubIndex) SaveObjects(_ context.Context, objects []search.Object) error {
	for _, obj := range objects {
		s.objects[obj.ObjectID] = obj
	}
	return nil
}

func (s *stubIndex) DeleteObjects(_ context.Context, objectIDs []string) error {
	for _, id := range objectIDs {
		delete(s.objects, id)
	}
	return nil
}

func (s *stubIndex) GetObjects(_ context.Context, objectIDs []string) ([]search.Object, error) {
	var out []search.Object
	for _, id := range objectIDs {
		if obj, ok := s.objects[id]; ok {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (s *stubIndex) Query(_ context.Context, _ string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func setupWishlistTestRouter(t *testing.T, index *stubIndex) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.WishlistItem{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	ctrl := NewWishlistController(service.NewWishlistService(repository.NewWishlistRepository(db), index))

	r := gin.New()
	// 测试里直接注入登录用户，跳过签发 Token
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, int64(1))
	})
	wishlist := r.Group("/api/wishlist")
	{
		wishlist.GET("", ctrl.List)
		wishlist.POST("", ctrl.Add)
		wishlist.DELETE("/:object_id", ctrl.Remove)
	}
	return r
}

func TestWishlist_AddListRemove(t *testing.T) {
	index := &stubIndex{objects: map[string]search.Object{
		"1_5": {ObjectID: "1_5", Name: "Ceramic Mug"},
		"2_9": {ObjectID: "2_9", Name: "Wool Hat"},
	}}
	r := setupWishlistTestRouter(t, index)

	// 空收藏夹返回空数组
	w := performRequest(r, "GET", "/api/wishlist", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)

	// 加入两件
	w = performRequest(r, "POST", "/api/wishlist", gin.H{"object_id": "1_5"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(r, "POST", "/api/wishlist", gin.H{"object_id": "2_9"})
	assert.Equal(t, http.StatusOK, w.Code)

	// 重复收藏幂等
	w = performRequest(r, "POST", "/api/wishlist", gin.H{"object_id": "1_5"})
	assert.Equal(t, http.StatusOK, w.Code)

	// 列表从索引取回文档
	w = performRequest(r, "GET", "/api/wishlist", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []search.Object `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 2)

	// 移出一件
	w = performRequest(r, "DELETE", "/api/wishlist/1_5", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "GET", "/api/wishlist", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)
	assert.Equal(t, "Wool Hat", listResp.Data[0].Name)
}

func TestWishlist_ReplacedProductDropsOut(t *testing.T) {
	index := &stubIndex{objects: map[string]search.Object{
		"1_5": {ObjectID: "1_5", Name: "Ceramic Mug"},
	}}
	r := setupWishlistTestRouter(t, index)

	w := performRequest(r, "POST", "/api/wishlist", gin.H{"object_id": "1_5"})
	assert.Equal(t, http.StatusOK, w.Code)

	// 导入替换把旧对象从索引删掉，收藏条目自然消失
	delete(index.objects, "1_5")

	w = performRequest(r, "GET", "/api/wishlist", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []search.Object `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 0)
}

func TestWishlist_AddValidation(t *testing.T) {
	r := setupWishlistTestRouter(t, &stubIndex{objects: map[string]search.Object{}})

	w := performRequest(r, "POST", "/api/wishlist", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
