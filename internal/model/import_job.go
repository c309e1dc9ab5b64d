package model

import (
	"time"
)

// ==================== ImportJob 导入任务 ====================

// 任务状态
const (
	ImportJobQueued    = "queued"
	ImportJobRunning   = "running"
	ImportJobSucceeded = "succeeded"
	ImportJobFailed    = "failed"
)

// ImportJob 一次目录导入的持久状态记录
// 触发接口先落一条 queued 记录再返回 204，调用方事后轮询它拿结果
type ImportJob struct {
	ID         string `gorm:"primaryKey;size:36"`
	BusinessID int64  `gorm:"index:idx_job_business;not null"`
	Source     string `gorm:"index:idx_job_business;size:20;not null"`
	Status     string `gorm:"size:20;not null;default:'queued'"`

	PagesFetched  int `gorm:"default:0"`
	ItemsSeen     int `gorm:"default:0"`
	ItemsAccepted int `gorm:"default:0"`

	Error string `gorm:"type:text"`

	StartedAt  *time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}
