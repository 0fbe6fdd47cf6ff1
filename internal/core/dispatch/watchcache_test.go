package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"

	pkgif "github.com/go-watchers/go-watchers/pkg/interfaces"
	"github.com/go-watchers/go-watchers/pkg/types"
)

// fakeSub 记录拆除次数的订阅
type fakeSub struct {
	spec   *types.Spec
	closed atomic.Int32
}

func (s *fakeSub) Spec() *types.Spec { return s.spec }

func (s *fakeSub) Close() error {
	s.closed.Add(1)
	return nil
}

// ============================================================================
// 订阅注册表测试
// ============================================================================

// TestWatchCache_GetOrCreate 测试获取或创建
func TestWatchCache_GetOrCreate(t *testing.T) {
	c := newWatchCache()
	w := &testWatcher{}

	calls := 0
	factory := func() pkgif.Subscription {
		calls++
		return &fakeSub{}
	}

	sub1 := c.getOrCreate(w, factory)
	sub2 := c.getOrCreate(w, factory)

	if calls != 1 {
		t.Errorf("Factory called %d times, want 1 (idempotent bind)", calls)
	}
	if sub1 != sub2 {
		t.Error("getOrCreate returned different subscriptions for the same key")
	}
	if c.size() != 1 {
		t.Errorf("Cache size = %d, want 1", c.size())
	}
}

// TestWatchCache_EvictTearsDown 测试移除时拆除订阅
func TestWatchCache_EvictTearsDown(t *testing.T) {
	c := newWatchCache()
	w := &testWatcher{}

	sub := &fakeSub{}
	c.getOrCreate(w, func() pkgif.Subscription { return sub })

	if err := c.evict(w); err != nil {
		t.Fatalf("evict() failed: %v", err)
	}
	if sub.closed.Load() != 1 {
		t.Errorf("Subscription closed %d times, want 1", sub.closed.Load())
	}
	if c.size() != 0 {
		t.Errorf("Cache size = %d after evict, want 0", c.size())
	}

	// 不存在的条目是空操作
	if err := c.evict(w); err != nil {
		t.Errorf("evict(absent) error = %v, want nil", err)
	}
}

// TestWatchCache_EvictAll 测试移除并拆除全部订阅
func TestWatchCache_EvictAll(t *testing.T) {
	c := newWatchCache()

	subs := make([]*fakeSub, 4)
	for i := range subs {
		subs[i] = &fakeSub{}
		sub := subs[i]
		c.getOrCreate(&testWatcher{}, func() pkgif.Subscription { return sub })
	}

	if err := c.evictAll(); err != nil {
		t.Fatalf("evictAll() failed: %v", err)
	}
	for i, sub := range subs {
		if sub.closed.Load() != 1 {
			t.Errorf("Subscription %d closed %d times, want 1", i, sub.closed.Load())
		}
	}
	if c.size() != 0 {
		t.Errorf("Cache size = %d after evictAll, want 0", c.size())
	}
}

// TestWatchCache_ConcurrentGetOrCreate 测试并发绑定同一消费者只创建一条订阅
func TestWatchCache_ConcurrentGetOrCreate(t *testing.T) {
	c := newWatchCache()
	w := &testWatcher{}

	var created atomic.Int32
	var wg sync.WaitGroup

	const goroutines = 16
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			c.getOrCreate(w, func() pkgif.Subscription {
				created.Add(1)
				return &fakeSub{}
			})
		}()
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Factory created %d subscriptions, want 1", created.Load())
	}
	if c.size() != 1 {
		t.Errorf("Cache size = %d, want 1", c.size())
	}
}
