// Package dispatch 实现事件调度引擎
package dispatch

import "sync/atomic"

// ============================================================================
// 调度统计
// ============================================================================

// stats 内部计数器
type stats struct {
	triggered atomic.Uint64 // 触发的记录数
	delivered atomic.Uint64 // 成功完成的调用数
	dropped   atomic.Uint64 // 背压整形丢弃的记录数
	failed    atomic.Uint64 // 调用返回错误的次数
}

// Stats 调度统计快照
type Stats struct {
	Triggered uint64
	Delivered uint64
	Dropped   uint64
	Failed    uint64
}

// snapshot 读取当前计数
func (s *stats) snapshot() Stats {
	return Stats{
		Triggered: s.triggered.Load(),
		Delivered: s.delivered.Load(),
		Dropped:   s.dropped.Load(),
		Failed:    s.failed.Load(),
	}
}
