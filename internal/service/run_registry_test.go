package service

import (
	"sync"
	"testing"

	"locality_dev_v1_202609/internal/model"
)

func TestRunRegistry_AcquireRelease(t *testing.T) {
	registry := NewRunRegistry()

	if !registry.Acquire(1, model.SourceEtsy) {
		t.Fatal("首次占用应成功")
	}
	if registry.Acquire(1, model.SourceEtsy) {
		t.Error("重复占用应失败")
	}
	if !registry.Running(1, model.SourceEtsy) {
		t.Error("占用后 Running 应为 true")
	}

	// 不同来源、不同商家互不影响
	if !registry.Acquire(1, model.SourceShopify) {
		t.Error("同商家不同来源应可占用")
	}
	if !registry.Acquire(2, model.SourceEtsy) {
		t.Error("不同商家同来源应可占用")
	}

	registry.Release(1, model.SourceEtsy)
	if registry.Running(1, model.SourceEtsy) {
		t.Error("释放后 Running 应为 false")
	}
	if !registry.Acquire(1, model.SourceEtsy) {
		t.Error("释放后应可再次占用")
	}
}

func TestRunRegistry_ConcurrentAcquire(t *testing.T) {
	registry := NewRunRegistry()

	const goroutines = 50
	var wg sync.WaitGroup
	acquired := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if registry.Acquire(1, model.SourceEtsy) {
				acquired <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(acquired)

	count := 0
	for range acquired {
		count++
	}
	if count != 1 {
		t.Errorf("并发占用成功数 = %d, want 1", count)
	}
}
