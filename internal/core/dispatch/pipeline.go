// Package dispatch 实现事件调度引擎
package dispatch

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/go-watchers/go-watchers/internal/core/subject"
	pkgif "github.com/go-watchers/go-watchers/pkg/interfaces"
	"github.com/go-watchers/go-watchers/pkg/types"
)

// ============================================================================
// 投递管线
// ============================================================================

// acceptFunc 管线内部的记录传递函数
type acceptFunc func(ev *types.Event)

// subscribe 为一个消费者构建订阅：组装投递管线并附加到通道
//
// 管线按固定顺序组装（由外到内）：
//  1. 采样（配置了 Sample 时）：间隔内突发合并为至多一条，保留最新
//  2. 背压整形（drop / buffer(N)）：有界队列 + 工作 goroutine
//  3. 调度器转移（绑定时指定了 Scheduler 时）：投递改投到执行上下文
//  4. 单次门控 + 最终调用
//
// 三者都未配置时没有任何解耦层，投递在触发 goroutine 上同步完成。
func (e *Engine) subscribe(n *node, w pkgif.Watcher, settings *pkgif.BindSettings) pkgif.Subscription {
	inv := &invoker{
		watcher: w,
		once:    n.cfg.Once,
		hook:    e.hook,
		stats:   &e.stats,
	}

	accept := inv.accept
	var stops []func()

	if settings.Scheduler != nil {
		accept = (&schedStage{sched: settings.Scheduler, next: accept}).accept
	}

	switch n.cfg.Backpressure {
	case types.BackpressureDrop:
		// drop 模式等价于容量 1 的队列：消费者忙即丢弃
		q := newQueueStage(1, n.spec, accept, &e.stats)
		stops = append(stops, q.close)
		accept = q.accept
	case types.BackpressureBuffer:
		q := newQueueStage(n.cfg.Buffer, n.spec, accept, &e.stats)
		stops = append(stops, q.close)
		accept = q.accept
	}

	if n.cfg.Sample > 0 {
		sm := newSampler(n.cfg.Sample, e.clk, accept)
		stops = append(stops, sm.close)
		accept = sm.accept
	}

	detach := n.subj.Attach(subject.Sink(accept))
	return &subscription{
		spec:   n.spec,
		detach: detach,
		stops:  stops,
	}
}

// ============================================================================
// 订阅
// ============================================================================

// subscription 一条活跃订阅
type subscription struct {
	spec      *types.Spec
	detach    func()
	stops     []func() // 管线停止函数，按组装顺序记录
	closeOnce sync.Once
}

// Spec 返回订阅的事件类型
func (s *subscription) Spec() *types.Spec {
	return s.spec
}

// Close 拆除订阅
//
// 先从通道分离（抑制后续投递），再由外到内停止管线资源。
// 已经提交到其他执行上下文的在途投递不保证被取消。
// Close 是并发安全的，可以多次调用。
func (s *subscription) Close() error {
	s.closeOnce.Do(func() {
		s.detach()
		for i := len(s.stops) - 1; i >= 0; i-- {
			s.stops[i]()
		}
	})
	return nil
}

// ============================================================================
// 采样阶段
// ============================================================================

// sampler 时间采样：每个间隔至多转发一条记录（保留最新）
type sampler struct {
	mu     sync.Mutex
	latest *types.Event
	dirty  bool

	ticker *clock.Ticker
	stop   chan struct{}
	next   acceptFunc
}

func newSampler(interval time.Duration, clk clock.Clock, next acceptFunc) *sampler {
	s := &sampler{
		ticker: clk.Ticker(interval),
		stop:   make(chan struct{}),
		next:   next,
	}
	go s.run()
	return s
}

func (s *sampler) accept(ev *types.Event) {
	s.mu.Lock()
	s.latest = ev
	s.dirty = true
	s.mu.Unlock()
}

func (s *sampler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.mu.Lock()
			if !s.dirty {
				s.mu.Unlock()
				continue
			}
			ev := s.latest
			s.dirty = false
			s.mu.Unlock()

			s.next(ev)
		case <-s.stop:
			return
		}
	}
}

func (s *sampler) close() {
	s.ticker.Stop()
	close(s.stop)
}

// ============================================================================
// 背压整形阶段
// ============================================================================

// queueStage 有界队列 + 单工作 goroutine
//
// 入队永不阻塞：队列满时丢弃最新记录（与通道的非阻塞发送一致），
// 每丢弃 100 条告警一次，避免日志泛滥。
type queueStage struct {
	mu     sync.Mutex
	ch     chan *types.Event
	closed bool

	spec  *types.Spec
	next  acceptFunc
	stats *stats

	drops int64
}

func newQueueStage(capacity int, spec *types.Spec, next acceptFunc, st *stats) *queueStage {
	if capacity < 1 {
		capacity = 1
	}
	q := &queueStage{
		ch:    make(chan *types.Event, capacity),
		spec:  spec,
		next:  next,
		stats: st,
	}
	go q.run()
	return q
}

func (q *queueStage) accept(ev *types.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}

	select {
	case q.ch <- ev:
	default:
		// 队列满，丢弃记录
		q.drops++
		q.stats.dropped.Add(1)
		if q.drops%100 == 1 {
			logger.Warn("慢消费者检测",
				"dropped", q.drops,
				"spec", q.spec.Name(),
				"reason", "backpressure queue full")
		}
	}
}

func (q *queueStage) run() {
	for ev := range q.ch {
		q.next(ev)
	}
}

func (q *queueStage) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// ============================================================================
// 调度器转移阶段
// ============================================================================

// schedStage 把每条记录的投递转投到绑定时指定的执行上下文
//
// 单个消费者在单个事件类型上的投递顺序由调度器的 FIFO 契约保证。
type schedStage struct {
	sched pkgif.Scheduler
	next  acceptFunc
}

func (s *schedStage) accept(ev *types.Event) {
	s.sched.Schedule(func() {
		s.next(ev)
	})
}

// ============================================================================
// 单次门控与最终调用
// ============================================================================

// invoker 管线终点：单次门控后调用消费者
type invoker struct {
	watcher pkgif.Watcher
	once    bool
	hook    pkgif.ErrorHook
	stats   *stats
}

func (i *invoker) accept(ev *types.Event) {
	// 单次消费：原子抢占，首个写入者胜出，其余跳过调用
	if i.once && !ev.TryConsume() {
		return
	}

	if err := i.watcher.OnWatch(ev); err != nil {
		i.stats.failed.Add(1)
		if i.hook != nil {
			i.hook(ev, err)
			return
		}
		logger.Error("投递失败",
			"spec", ev.Spec().Name(),
			"action", ev.Action(),
			"err", err)
		return
	}
	i.stats.delivered.Add(1)
}
