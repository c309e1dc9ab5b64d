package model

// ==================== User 用户 ====================

// 用户角色
const (
	RoleShopper  = "shopper"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

type User struct {
	BaseModel
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	FirstName    string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	Role         string `gorm:"size:20;default:'shopper'"`

	// 商家账号关联的商家记录，普通用户为 0
	BusinessID int64 `gorm:"index;default:0"`
}

func (User) TableName() string {
	return "users"
}

// WishlistItem 收藏夹条目，object_id 即索引中的 objectID
type WishlistItem struct {
	BaseModel
	UserID   int64  `gorm:"index:idx_wishlist_user,unique;not null"`
	ObjectID string `gorm:"index:idx_wishlist_user,unique;size:64;not null"`
}

func (WishlistItem) TableName() string {
	return "wishlist"
}
