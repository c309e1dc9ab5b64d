package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"locality_dev_v1_202609/internal/model"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.WishlistItem{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(setupUserTestDB(t))
	ctx := context.Background()

	user := &model.User{
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$fakehash",
		FirstName:    "Alice",
		Role:         model.RoleShopper,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == 0 {
		t.Fatal("创建后应回填 ID")
	}

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != user.ID || got.FirstName != "Alice" {
		t.Errorf("GetByEmail() = %+v", got)
	}

	got, err = repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("GetByID().Email = %q", got.Email)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("查不存在的邮箱 err = %v, want ErrRecordNotFound", err)
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupUserTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "y"}); err == nil {
		t.Error("重复邮箱应违反唯一索引")
	}
}

func TestWishlistRepo(t *testing.T) {
	repo := NewWishlistRepository(setupUserTestDB(t))
	ctx := context.Background()

	if err := repo.Add(ctx, &model.WishlistItem{UserID: 1, ObjectID: "1_5"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := repo.Add(ctx, &model.WishlistItem{UserID: 1, ObjectID: "2_9"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Add(ctx, &model.WishlistItem{UserID: 2, ObjectID: "1_5"}); err != nil {
		t.Fatal(err)
	}

	// 同用户同对象违反唯一索引
	if err := repo.Add(ctx, &model.WishlistItem{UserID: 1, ObjectID: "1_5"}); err == nil {
		t.Error("重复收藏应违反唯一索引")
	}

	items, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("收藏数 = %d, want 2", len(items))
	}

	if err := repo.Remove(ctx, 1, "1_5"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	items, _ = repo.ListByUser(ctx, 1)
	if len(items) != 1 || items[0].ObjectID != "2_9" {
		t.Errorf("移除后收藏 = %+v", items)
	}

	// 不串用户
	items, _ = repo.ListByUser(ctx, 2)
	if len(items) != 1 {
		t.Errorf("用户 2 收藏数 = %d, want 1", len(items))
	}

	// 移除不存在的条目静默成功
	if err := repo.Remove(ctx, 1, "no_such"); err != nil {
		t.Errorf("移除不存在条目 error = %v", err)
	}
}
