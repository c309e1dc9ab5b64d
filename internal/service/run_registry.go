package service

import (
	"fmt"
	"sync"
)

// ==================== 导入运行注册表 ====================

// RunRegistry 记录正在运行的导入任务
// 同一商家同一来源的导入同一时刻只允许一个
type RunRegistry interface {
	// Acquire 尝试占用运行槽位，已有任务在运行时返回 false
	Acquire(businessID int64, source string) bool
	// Release 释放运行槽位
	Release(businessID int64, source string)
	// Running 查询是否有任务在运行
	Running(businessID int64, source string) bool
}

type runRegistry struct {
	running sync.Map
}

// NewRunRegistry 创建进程内运行注册表
func NewRunRegistry() RunRegistry {
	return &runRegistry{}
}

func runKey(businessID int64, source string) string {
	return fmt.Sprintf("%s:%d", source, businessID)
}

func (r *runRegistry) Acquire(businessID int64, source string) bool {
	_, loaded := r.running.LoadOrStore(runKey(businessID, source), struct{}{})
	return !loaded
}

func (r *runRegistry) Release(businessID int64, source string) {
	r.running.Delete(runKey(businessID, source))
}

func (r *runRegistry) Running(businessID int64, source string) bool {
	_, ok := r.running.Load(runKey(businessID, source))
	return ok
}
