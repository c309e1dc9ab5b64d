package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"locality_dev_v1_202609/internal/model"
	"locality_dev_v1_202609/internal/repository"
	"locality_dev_v1_202609/pkg/search"
)

// ==================== WishlistService 收藏夹服务 ====================

// WishlistService 收藏夹
// 本地只存 objectID，展示数据实时从索引取，商品被替换后自动失效
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	index        search.Index
}

// NewWishlistService 创建收藏夹服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, index search.Index) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		index:        index,
	}
}

// Add 加入收藏，重复收藏按幂等处理
func (s *WishlistService) Add(ctx context.Context, userID int64, objectID string) error {
	err := s.wishlistRepo.Add(ctx, &model.WishlistItem{
		UserID:   userID,
		ObjectID: objectID,
	})
	if err != nil && isDuplicateErr(err) {
		return nil
	}
	return err
}

// Remove 移出收藏
func (s *WishlistService) Remove(ctx context.Context, userID int64, objectID string) error {
	return s.wishlistRepo.Remove(ctx, userID, objectID)
}

// List 收藏夹内容，从索引批量取回文档
// 商品被导入替换后索引里已不存在，对应条目跳过
func (s *WishlistService) List(ctx context.Context, userID int64) ([]search.Object, error) {
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []search.Object{}, nil
	}

	objectIDs := make([]string, len(items))
	for i, item := range items {
		objectIDs[i] = item.ObjectID
	}
	return s.index.GetObjects(ctx, objectIDs)
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
