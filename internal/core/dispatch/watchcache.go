// Package dispatch 实现事件调度引擎
package dispatch

import (
	"sync"

	"go.uber.org/multierr"

	pkgif "github.com/go-watchers/go-watchers/pkg/interfaces"
)

// ============================================================================
// 订阅注册表
// ============================================================================

// watchCache 每事件类型的订阅注册表
//
// 并发映射：消费者身份 → 活跃订阅。键是消费者的接口值
// （指针 + 动态类型），地址相同但类型不同的消费者
// （如外层结构体与其内嵌首字段）是两个不同的条目。
// 同一消费者至多一条活跃订阅；任何移除路径（evict、evictAll）
// 都会同步拆除订阅（从通道分离、停止管线资源）。
//
// 注册表不持有消费者本身的所有权语义，只持有其订阅；
// 绑定契约是 Bind 与 Unbind 成对出现。
type watchCache struct {
	mu      sync.Mutex
	entries map[pkgif.Watcher]pkgif.Subscription
}

// newWatchCache 创建订阅注册表
func newWatchCache() *watchCache {
	return &watchCache{
		entries: make(map[pkgif.Watcher]pkgif.Subscription),
	}
}

// getOrCreate 获取或创建订阅
//
// 无活跃条目时调用 factory 构建订阅并登记；
// 已有条目时不再调用 factory（幂等绑定）。
// factory 在注册表锁内执行，并发绑定同一消费者
// 也只会创建一条订阅。
func (c *watchCache) getOrCreate(w pkgif.Watcher, factory func() pkgif.Subscription) pkgif.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sub, ok := c.entries[w]; ok {
		return sub
	}
	sub := factory()
	c.entries[w] = sub
	return sub
}

// evict 移除消费者的订阅并拆除
//
// 条目不存在时是静默空操作。
func (c *watchCache) evict(w pkgif.Watcher) error {
	c.mu.Lock()
	sub, ok := c.entries[w]
	if ok {
		delete(c.entries, w)
	}
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return sub.Close()
}

// evictAll 移除并拆除全部订阅
func (c *watchCache) evictAll() error {
	c.mu.Lock()
	subs := make([]pkgif.Subscription, 0, len(c.entries))
	for _, sub := range c.entries {
		subs = append(subs, sub)
	}
	c.entries = make(map[pkgif.Watcher]pkgif.Subscription)
	c.mu.Unlock()

	var errs error
	for _, sub := range subs {
		errs = multierr.Append(errs, sub.Close())
	}
	return errs
}

// size 返回活跃订阅数
func (c *watchCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
