package watchers

import (
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/go-watchers/go-watchers/internal/core/dispatch"
	pkgif "github.com/go-watchers/go-watchers/pkg/interfaces"
	"github.com/go-watchers/go-watchers/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              门面
// ════════════════════════════════════════════════════════════════════════════

// Watchers 事件调度门面
//
// 包装一个调度引擎实例，实现 interfaces.Dispatcher。
// 实例应显式创建并注入到生产者/消费者；
// 包级便捷函数只是对一个显式构造实例（Default）的薄封装。
type Watchers struct {
	engine *dispatch.Engine
}

// Option 门面选项函数类型
type Option func(*[]dispatch.Option)

// WithErrorHook 设置投递失败回调
func WithErrorHook(h pkgif.ErrorHook) Option {
	return func(opts *[]dispatch.Option) {
		*opts = append(*opts, dispatch.WithErrorHook(h))
	}
}

// WithClock 设置时钟源（采样间隔计时；测试中可注入 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(opts *[]dispatch.Option) {
		*opts = append(*opts, dispatch.WithClock(c))
	}
}

// New 创建新的事件调度门面
func New(opts ...Option) *Watchers {
	var engineOpts []dispatch.Option
	for _, opt := range opts {
		opt(&engineOpts)
	}
	return &Watchers{
		engine: dispatch.NewEngine(engineOpts...),
	}
}

// Resolve 获取事件类型的触发句柄
func (w *Watchers) Resolve(spec *types.Spec) (pkgif.Handle, error) {
	return w.engine.Resolve(spec)
}

// Bind 绑定消费者到其声明支持的全部事件类型
func (w *Watchers) Bind(watcher pkgif.Watcher, opts ...pkgif.BindOpt) error {
	return w.engine.Bind(watcher, opts...)
}

// Unbind 从消费者支持的全部事件类型上解绑
func (w *Watchers) Unbind(watcher pkgif.Watcher) error {
	return w.engine.Unbind(watcher)
}

// UnbindAll 解绑指定事件类型上的全部消费者
func (w *Watchers) UnbindAll(spec *types.Spec) error {
	return w.engine.UnbindAll(spec)
}

// Close 关闭门面及其引擎
func (w *Watchers) Close() error {
	return w.engine.Close()
}

// Stats 返回调度统计快照
func (w *Watchers) Stats() dispatch.Stats {
	return w.engine.Stats()
}

// ════════════════════════════════════════════════════════════════════════════
//                              包级便捷入口
// ════════════════════════════════════════════════════════════════════════════

var (
	defaultOnce     sync.Once
	defaultInstance *Watchers
)

// Default 返回进程级默认实例（首次调用时构造）
func Default() *Watchers {
	defaultOnce.Do(func() {
		defaultInstance = New()
	})
	return defaultInstance
}

// Of 在默认实例上获取事件类型的触发句柄
func Of(spec *types.Spec) (pkgif.Handle, error) {
	return Default().Resolve(spec)
}

// Bind 在默认实例上绑定消费者
func Bind(w pkgif.Watcher, opts ...pkgif.BindOpt) error {
	return Default().Bind(w, opts...)
}

// Unbind 在默认实例上解绑消费者
func Unbind(w pkgif.Watcher) error {
	return Default().Unbind(w)
}

// UnbindAll 在默认实例上解绑指定事件类型的全部消费者
func UnbindAll(spec *types.Spec) error {
	return Default().UnbindAll(spec)
}
