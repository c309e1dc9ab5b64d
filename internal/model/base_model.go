package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 业务表共用的主键与时间戳
// 删除统一走软删除；对外输出一律经 dto 转换，不直接序列化模型
type BaseModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
