package repository

import (
	"context"

	"gorm.io/gorm"

	"locality_dev_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// WishlistRepository 收藏仓储接口
type WishlistRepository interface {
	Add(ctx context.Context, item *model.WishlistItem) error
	Remove(ctx context.Context, userID int64, objectID string) error
	ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error)
}

// ==================== 仓储实现 ====================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

type wishlistRepo struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏仓储
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepo{db: db}
}

func (r *wishlistRepo) Add(ctx context.Context, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *wishlistRepo) Remove(ctx context.Context, userID int64, objectID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND object_id = ?", userID, objectID).
		Delete(&model.WishlistItem{}).Error
}

func (r *wishlistRepo) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}
