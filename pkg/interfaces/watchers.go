// Package interfaces 定义 go-watchers 公共接口
//
// 本文件定义调度引擎的对外契约：触发、绑定、解绑与订阅句柄。
package interfaces

import "github.com/go-watchers/go-watchers/pkg/types"

// Dispatcher 定义事件调度引擎接口
//
// Dispatcher 提供类型安全的事件触发/绑定机制：
// 生产者通过 Resolve 获得触发句柄；消费者通过 Bind 注册，
// 按事件类型的投递配置接收记录。
type Dispatcher interface {
	// Resolve 获取指定事件类型的触发句柄
	//
	// 非法的事件类型声明（见 types.Spec.WellFormed）在此同步报错，
	// 不会创建任何通道或注册表。句柄可长期持有、并发使用。
	Resolve(spec *types.Spec) (Handle, error)

	// Bind 绑定消费者到其声明支持的全部事件类型
	//
	// 对同一 (消费者, 事件类型) 重复绑定是幂等的静默空操作。
	Bind(w Watcher, opts ...BindOpt) error

	// Unbind 从消费者支持的全部事件类型上解绑
	//
	// 解绑未绑定过的消费者是静默空操作。
	Unbind(w Watcher) error

	// UnbindAll 解绑指定事件类型上的全部消费者（测试/管理用途）
	UnbindAll(spec *types.Spec) error

	// Close 关闭引擎：解绑全部消费者并停止管线 goroutine
	Close() error
}

// Handle 定义事件类型的触发句柄
//
// 句柄的每次 Trigger 构造一条事件记录并推入该类型的多播通道。
type Handle interface {
	// Trigger 触发一次动作
	//
	// 调用不会等待消费者执行完成；当既无采样、无背压整形、
	// 也未指定调度器时，投递在触发 goroutine 上同步完成。
	Trigger(action string, args ...any)

	// Complete 发出终止信号
	//
	// 此后的 Trigger 被忽略；Async 变体在收到终止信号时
	// 向全部消费者投递最后一条记录。
	Complete()
}

// Watcher 定义事件消费者接口
//
// 消费者显式声明其支持的能力集合，并通过 OnWatch
// 接收路由到它的事件记录（动作标识 + 参数元组）。
type Watcher interface {
	// Watching 返回消费者声明支持的能力集合
	//
	// 列表可以包含派生自多个声明的能力集合；
	// 绑定时会做传递展开并去重。
	Watching() []*types.Spec

	// OnWatch 处理一条事件记录
	//
	// 返回的错误交给引擎的错误回调处理，不会中断订阅。
	OnWatch(ev *types.Event) error
}

// Subscription 定义一条活跃订阅
//
// 订阅是一个消费者与一个事件类型的通道之间的活跃链接，
// 由订阅注册表持有；同一 (消费者, 事件类型) 至多一条活跃订阅。
type Subscription interface {
	// Spec 返回订阅的事件类型
	Spec() *types.Spec

	// Close 拆除订阅：从通道分离并停止管线资源
	//
	// Close 是并发安全的，可以多次调用。
	Close() error
}

// Scheduler 定义投递调度的执行上下文
//
// 绑定时指定调度器后，该消费者在该事件类型上的投递
// 改为提交到调度器异步执行。实现必须保证同一来源的任务
// 按提交顺序执行（FIFO），且 Schedule 不阻塞提交方。
type Scheduler interface {
	// Schedule 提交一个投递任务
	Schedule(task func())
}

// SchedulerFunc 函数式 Scheduler 适配器
type SchedulerFunc func(task func())

// Schedule 实现 Scheduler 接口
func (f SchedulerFunc) Schedule(task func()) {
	f(task)
}

// ErrorHook 每次投递失败的回调
//
// 消费者 OnWatch 返回错误时调用；回调不应阻塞。
type ErrorHook func(ev *types.Event, err error)

// BindOpt 绑定选项函数类型
type BindOpt func(*BindSettings)

// BindSettings 绑定设置（导出以供实现使用）
type BindSettings struct {
	Scheduler Scheduler
}

// ObserveOn 指定投递调度器
//
// 未指定时，投递在触发 goroutine 上执行。
func ObserveOn(s Scheduler) BindOpt {
	return func(bs *BindSettings) {
		bs.Scheduler = s
	}
}
