// Package dispatch 实现事件调度引擎
package dispatch

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	pkgif "github.com/go-watchers/go-watchers/pkg/interfaces"
	"github.com/go-watchers/go-watchers/pkg/lib/log"
	"github.com/go-watchers/go-watchers/pkg/types"
)

var logger = log.Logger("core/dispatch")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrClosed 调度引擎已关闭
	ErrClosed = errors.New("dispatcher closed")
	// ErrNilSpec 事件类型声明为空
	ErrNilSpec = errors.New("nil spec")
	// ErrInvalidSpec 非法的事件类型声明（必须且只能直接派生自基础标记）
	ErrInvalidSpec = errors.New("spec does not declare an event type")
	// ErrNonPointerWatcher 非指针消费者（身份需要引用语义）
	ErrNonPointerWatcher = errors.New("bind called with non-pointer watcher")
)

// ============================================================================
// Engine 实现
// ============================================================================

// Engine 事件调度引擎
//
// 每个事件类型对应一个节点：一份解析后的配置、一条多播通道、
// 一个订阅注册表。节点在首次触发或首次绑定时惰性创建，
// 并发首用下保证恰好创建一次。
type Engine struct {
	mu sync.RWMutex

	// nodes 事件类型节点映射
	nodes map[*types.Spec]*node

	// handles 触发句柄缓存（每个事件类型至多一个）
	handles map[*types.Spec]*handle

	hook  pkgif.ErrorHook
	clk   clock.Clock
	stats stats

	closed bool
}

// Option 引擎选项函数类型
type Option func(*Engine)

// WithErrorHook 设置投递失败回调
//
// 未设置时，失败以 Error 级别记录日志。
func WithErrorHook(h pkgif.ErrorHook) Option {
	return func(e *Engine) {
		e.hook = h
	}
}

// WithClock 设置时钟源（测试中可注入 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clk = c
	}
}

// NewEngine 创建新的调度引擎
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		nodes:   make(map[*types.Spec]*node),
		handles: make(map[*types.Spec]*handle),
		clk:     clock.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ============================================================================
// Dispatcher 接口实现
// ============================================================================

// Resolve 获取事件类型的触发句柄
//
// 非法声明在此同步报错，不创建任何通道或注册表。
func (e *Engine) Resolve(spec *types.Spec) (pkgif.Handle, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}
	if !spec.WellFormed() {
		return nil, fmt.Errorf("resolve %q: %w", spec.Name(), ErrInvalidSpec)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}

	h, ok := e.handles[spec]
	if !ok {
		h = &handle{engine: e, spec: spec}
		e.handles[spec] = h
	}
	return h, nil
}

// Bind 绑定消费者到其声明支持的全部事件类型
//
// 能力发现对声明列表做传递展开：保留所有（直接或间接）
// 派生自基础标记的声明，排除标记本身，并去重。
// 同一 (消费者, 事件类型) 已有活跃订阅时静默跳过。
func (e *Engine) Bind(w pkgif.Watcher, opts ...pkgif.BindOpt) error {
	if err := checkWatcher(w); err != nil {
		return err
	}

	settings := &pkgif.BindSettings{}
	for _, opt := range opts {
		opt(settings)
	}

	for _, spec := range capabilities(w) {
		n, err := e.prepare(spec)
		if err != nil {
			return err
		}
		n.cache.getOrCreate(w, func() pkgif.Subscription {
			return e.subscribe(n, w, settings)
		})
	}
	return nil
}

// Unbind 从消费者支持的全部事件类型上解绑
//
// 从未绑定过的消费者是静默空操作。
func (e *Engine) Unbind(w pkgif.Watcher) error {
	if err := checkWatcher(w); err != nil {
		return err
	}

	var errs error
	for _, spec := range capabilities(w) {
		n, err := e.prepare(spec)
		if err != nil {
			return err
		}
		errs = multierr.Append(errs, n.cache.evict(w))
	}
	return errs
}

// UnbindAll 解绑指定事件类型上的全部消费者
func (e *Engine) UnbindAll(spec *types.Spec) error {
	if spec == nil {
		return ErrNilSpec
	}
	n, err := e.prepare(spec)
	if err != nil {
		return err
	}
	return n.cache.evictAll()
}

// Close 关闭引擎
//
// 拆除全部订阅、停止管线 goroutine 并标记通道终止。
// 关闭后的 Trigger 被忽略，Resolve/Bind 返回 ErrClosed。
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	nodes := make([]*node, 0, len(e.nodes))
	for _, n := range e.nodes {
		nodes = append(nodes, n)
	}
	e.nodes = make(map[*types.Spec]*node)
	e.mu.Unlock()

	var errs error
	for _, n := range nodes {
		errs = multierr.Append(errs, n.cache.evictAll())
		n.subj.Complete()
	}
	return errs
}

// Stats 返回调度统计快照
func (e *Engine) Stats() Stats {
	return e.stats.snapshot()
}

// ============================================================================
// 触发句柄
// ============================================================================

// handle 事件类型的触发句柄
//
// 句柄是稳定的：同一事件类型的多次 Resolve 返回同一实例。
type handle struct {
	engine *Engine
	spec   *types.Spec
}

// Trigger 触发一次动作：惰性准备节点并推入事件记录
func (h *handle) Trigger(action string, args ...any) {
	n, err := h.engine.prepare(h.spec)
	if err != nil {
		// 引擎已关闭：触发被忽略
		logger.Debug("忽略触发", "spec", h.spec.Name(), "action", action, "err", err)
		return
	}
	// 只统计被通道接收的推入（终止信号之后的触发被忽略）
	if n.subj.Push(types.NewEvent(h.spec, action, args)) {
		h.engine.stats.triggered.Add(1)
	}
}

// Complete 发出终止信号
func (h *handle) Complete() {
	n, err := h.engine.prepare(h.spec)
	if err != nil {
		return
	}
	n.subj.Complete()
}

// ============================================================================
// 消费者身份与能力发现
// ============================================================================

// checkWatcher 校验消费者具备引用身份
//
// 消费者按引用身份比较而非值相等，因此必须是指针。
// 身份是接口值本身（指针 + 动态类型）：外层结构体与其
// 首字段地址相同，但动态类型不同，仍是两个不同的消费者。
func checkWatcher(w pkgif.Watcher) error {
	if w == nil {
		return ErrNonPointerWatcher
	}
	if reflect.ValueOf(w).Kind() != reflect.Ptr {
		return fmt.Errorf("%w: %T", ErrNonPointerWatcher, w)
	}
	return nil
}

// capabilities 展开消费者声明的能力集合
//
// 对每个声明及其全部祖先做传递遍历，保留派生自基础标记的声明，
// 排除标记本身；多条派生路径不会产生重复项。
func capabilities(w pkgif.Watcher) []*types.Spec {
	seen := make(map[*types.Spec]struct{})
	var out []*types.Spec

	var visit func(s *types.Spec)
	visit = func(s *types.Spec) {
		if s == nil {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		for _, p := range s.Parents() {
			visit(p)
		}
		if s != types.Marker() && s.Specializes(types.Marker()) {
			out = append(out, s)
		}
	}

	for _, s := range w.Watching() {
		visit(s)
	}
	return out
}
