// Package subject 实现多播通道
package subject

import (
	"sync"
	"sync/atomic"

	"github.com/go-watchers/go-watchers/pkg/types"
)

// Sink 通道出口：每条推入的记录按变体策略送达各出口
type Sink func(ev *types.Event)

// Subject 多播通道
//
// 生产者调用 Push 推入记录，任意数量的出口可以在创建后附加。
// 各出口相互独立、互不干扰；新附加的出口能看到多少历史记录
// 由变体决定（见 types.SubjectKind）。
type Subject interface {
	// Push 推入一条记录
	//
	// Push 不会阻塞生产者；终止信号之后的 Push 被忽略并返回 false，
	// 被通道接收的 Push 返回 true。
	Push(ev *types.Event) bool

	// Attach 附加一个出口，返回分离函数
	//
	// 分离函数只置标记、不取锁，可以在投递回调内调用。
	Attach(sink Sink) (detach func())

	// Complete 发出终止信号
	Complete()
}

// New 按变体创建多播通道
func New(kind types.SubjectKind) Subject {
	switch kind {
	case types.SubjectBehavior:
		return &behaviorSubject{}
	case types.SubjectReplay:
		return &replaySubject{}
	case types.SubjectAsync:
		return &asyncSubject{}
	default:
		return &publishSubject{}
	}
}

// ============================================================================
// 共享底座
// ============================================================================

// entry 出口登记项
//
// removed 标记出口已分离：置位后的扇出跳过该出口，
// 条目本身在下一次推入时被压缩掉。
type entry struct {
	sink    Sink
	removed atomic.Bool
}

// base 变体共享的出口管理
//
// 推入与附加都在 mu 保护下进行，保证单一事件类型内的投递顺序。
// 分离不取锁（仅置 removed 标记），因此消费者可以在同步投递
// 回调内解绑自身；同步投递期间再次触发同一事件类型不受支持
// （会在锁上自死锁）。
type base struct {
	mu    sync.Mutex
	sinks []*entry
	done  bool
}

// add 登记出口并返回分离函数（调用方需持有 mu）
//
// 分离是立即生效的抑制：置位之后的扇出不再投递到该出口；
// 已经进入回调的在途投递不被取消。
func (b *base) add(e *entry) func() {
	b.sinks = append(b.sinks, e)
	return func() {
		e.removed.Store(true)
	}
}

// fanout 向当前全部出口投递，并顺带压缩已分离的条目（调用方需持有 mu）
func (b *base) fanout(ev *types.Event) {
	kept := b.sinks[:0]
	for _, e := range b.sinks {
		if e.removed.Load() {
			continue
		}
		kept = append(kept, e)
		e.sink(ev)
	}
	b.sinks = kept
}

// ============================================================================
// Publish 变体
// ============================================================================

// publishSubject 只投递附加之后推入的记录
type publishSubject struct {
	base
}

func (s *publishSubject) Push(ev *types.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return false
	}
	s.fanout(ev)
	return true
}

func (s *publishSubject) Attach(sink Sink) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(&entry{sink: sink})
}

func (s *publishSubject) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
}
